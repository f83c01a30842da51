package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	_ "github.com/jackc/pgx/v5/stdlib" // импортируем драйвер pgx
	"golang.org/x/crypto/bcrypt"
)

var ErrAnalystNotFound = errors.New("аналитик не найден")

type Credentials struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AnalystStore хранит учётные записи аналитиков.
type AnalystStore interface {
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, username string, passwordHash []byte) error
	PasswordHash(ctx context.Context, username string) ([]byte, error)
}

// SQLAnalystStore хранит аналитиков в PostgreSQL (драйвер pgx).
type SQLAnalystStore struct {
	db *sql.DB
}

const createAnalysts = `CREATE TABLE IF NOT EXISTS analysts (
	username   TEXT PRIMARY KEY,
	password   BYTEA NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// InitializeDB открывает подключение и создаёт таблицу аналитиков.
func InitializeDB(ctx context.Context, dataSourceName string) (*SQLAnalystStore, error) {
	db, err := sql.Open("pgx", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть БД: %w", err)
	}

	// Проверяем подключение
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}
	if _, err := db.ExecContext(ctx, createAnalysts); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать таблицу analysts: %w", err)
	}
	return &SQLAnalystStore{db: db}, nil
}

func (s *SQLAnalystStore) Close() error {
	return s.db.Close()
}

func (s *SQLAnalystStore) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM analysts WHERE username=$1)", username).Scan(&exists)
	return exists, err
}

func (s *SQLAnalystStore) Create(ctx context.Context, username string, passwordHash []byte) error {
	_, err := s.db.ExecContext(ctx, "INSERT INTO analysts (username, password) VALUES ($1, $2)", username, passwordHash)
	return err
}

func (s *SQLAnalystStore) PasswordHash(ctx context.Context, username string) ([]byte, error) {
	var hash []byte
	err := s.db.QueryRowContext(ctx, "SELECT password FROM analysts WHERE username=$1", username).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAnalystNotFound
	}
	return hash, err
}

// Auth обслуживает регистрацию и вход аналитиков.
type Auth struct {
	Store    AnalystStore
	JwtKey   []byte
	TokenTTL time.Duration
}

func (a *Auth) Register(c *gin.Context) {
	var creds Credentials
	if err := c.ShouldBind(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный запрос"})
		return
	}

	exists, err := a.Store.Exists(c.Request.Context(), creds.Username)
	if err != nil {
		log.Printf("Ошибка БД при регистрации %s: %v", creds.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка базы данных"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Аналитик уже существует"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось захешировать пароль"})
		return
	}

	if err := a.Store.Create(c.Request.Context(), creds.Username, hashedPassword); err != nil {
		log.Printf("Не удалось сохранить аналитика %s: %v", creds.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось сохранить аналитика"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Регистрация прошла успешно"})
}

func (a *Auth) Login(c *gin.Context) {
	var creds Credentials
	if err := c.ShouldBind(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный запрос"})
		return
	}

	storedPassword, err := a.Store.PasswordHash(c.Request.Context(), creds.Username)
	if errors.Is(err, ErrAnalystNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Аналитик не найден"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка базы данных"})
		return
	}

	if err := bcrypt.CompareHashAndPassword(storedPassword, []byte(creds.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Неверный пароль"})
		return
	}

	tokenString, expirationTime, err := a.IssueToken(creds.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать токен"})
		return
	}

	c.SetCookie("token", tokenString, int(time.Until(expirationTime).Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Вход выполнен", "token": tokenString})
}

func (a *Auth) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Выход выполнен"})
}

// IssueToken подписывает JWT аналитика.
func (a *Auth) IssueToken(username string) (string, time.Time, error) {
	ttl := a.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	expirationTime := time.Now().Add(ttl)
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.JwtKey)
	return tokenString, expirationTime, err
}
