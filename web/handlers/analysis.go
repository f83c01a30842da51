package handlers

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/lbgsct/cryptobreak/proto/analysispb"
)

// AnalysisRequest описывает тело запросов /api. Data, Key и IV закодированы согласно Encoding.
type AnalysisRequest struct {
	Data       string `json:"data"`
	Key        string `json:"key"`
	IV         string `json:"iv"`
	Encoding   string `json:"encoding"` // text, hex или base64; по умолчанию text
	BlockSize  int    `json:"block_size"`
	Padding    string `json:"padding"`
	KeySize    int    `json:"key_size"`
	MinKeySize int    `json:"min_key_size"`
	MaxKeySize int    `json:"max_key_size"`
	Runs       int    `json:"runs"`
}

// ResultView: JSON-представление результата для браузера.
type ResultView struct {
	JobID      string    `json:"job_id"`
	Operation  string    `json:"operation"`
	Owner      string    `json:"owner,omitempty"`
	Mode       string    `json:"mode,omitempty"`
	Truth      string    `json:"truth,omitempty"`
	KeyHex     string    `json:"key_hex,omitempty"`
	KeyText    string    `json:"key_text,omitempty"`
	KeySize    int       `json:"key_size,omitempty"`
	Score      float64   `json:"score,omitempty"`
	Distance   float64   `json:"distance,omitempty"`
	OutputHex  string    `json:"output_hex,omitempty"`
	OutputText string    `json:"output_text,omitempty"`
	Repeated   int       `json:"repeated,omitempty"`
	Runs       int       `json:"runs,omitempty"`
	Correct    int       `json:"correct,omitempty"`
	Cached     bool      `json:"cached"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewResultView(r *analysispb.Result) ResultView {
	v := ResultView{
		JobID:     r.JobID,
		Operation: r.Operation,
		Owner:     r.Owner,
		Mode:      r.Mode,
		Truth:     r.Truth,
		KeyHex:    hex.EncodeToString(r.Key),
		KeySize:   r.KeySize,
		Score:     r.Score,
		Distance:  r.Distance,
		OutputHex: hex.EncodeToString(r.Output),
		Repeated:  r.Repeated,
		Runs:      r.Runs,
		Correct:   r.Correct,
		Cached:    r.Cached,
		CreatedAt: r.CreatedAt,
	}
	if utf8.Valid(r.Key) {
		v.KeyText = string(r.Key)
	}
	if utf8.Valid(r.Output) {
		v.OutputText = string(r.Output)
	}
	return v
}

func decodeField(encoding, s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	switch encoding {
	case "", "text":
		return []byte(s), nil
	case "hex":
		return hex.DecodeString(s)
	case "base64":
		return base64.StdEncoding.DecodeString(s)
	default:
		return nil, fmt.Errorf("неизвестная кодировка %q", encoding)
	}
}

func (r *AnalysisRequest) toRequest() (*analysispb.Request, error) {
	req := &analysispb.Request{
		BlockSize:  r.BlockSize,
		Padding:    r.Padding,
		KeySize:    r.KeySize,
		MinKeySize: r.MinKeySize,
		MaxKeySize: r.MaxKeySize,
		Runs:       r.Runs,
	}
	var err error
	if req.Data, err = decodeField(r.Encoding, r.Data); err != nil {
		return nil, fmt.Errorf("поле data: %w", err)
	}
	if req.Key, err = decodeField(r.Encoding, r.Key); err != nil {
		return nil, fmt.Errorf("поле key: %w", err)
	}
	if req.IV, err = decodeField(r.Encoding, r.IV); err != nil {
		return nil, fmt.Errorf("поле iv: %w", err)
	}
	return req, nil
}

// Analysis проксирует запросы /api в gRPC-сервис анализа.
type Analysis struct {
	Client analysispb.AnalysisServiceClient
}

type unaryCall func(analysispb.AnalysisServiceClient, context.Context, *analysispb.Request, ...grpc.CallOption) (*analysispb.Result, error)

// Контекст исходящего вызова с именем аналитика и токеном из JWT
func analystContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if username := c.GetString("username"); username != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "x-analyst", username)
	}
	if token := c.GetString("token"); token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
	}
	return ctx
}

func httpStatus(err error) int {
	switch status.Code(err) {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (a *Analysis) handle(call unaryCall) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body AnalysisRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный запрос"})
			return
		}
		req, err := body.toRequest()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := call(a.Client, analystContext(c), req)
		if err != nil {
			c.JSON(httpStatus(err), gin.H{"error": status.Convert(err).Message()})
			return
		}
		c.JSON(http.StatusOK, NewResultView(res))
	}
}

func (a *Analysis) Pad() gin.HandlerFunc {
	return a.handle(analysispb.AnalysisServiceClient.Pad)
}

func (a *Analysis) EncryptCBC() gin.HandlerFunc {
	return a.handle(analysispb.AnalysisServiceClient.EncryptCBC)
}

func (a *Analysis) DecryptCBC() gin.HandlerFunc {
	return a.handle(analysispb.AnalysisServiceClient.DecryptCBC)
}

func (a *Analysis) DetectMode() gin.HandlerFunc {
	return a.handle(analysispb.AnalysisServiceClient.DetectMode)
}

func (a *Analysis) BreakSingleByteXor() gin.HandlerFunc {
	return a.handle(analysispb.AnalysisServiceClient.BreakSingleByteXor)
}

func (a *Analysis) BreakRepeatingKeyXor() gin.HandlerFunc {
	return a.handle(analysispb.AnalysisServiceClient.BreakRepeatingKeyXor)
}

func (a *Analysis) OracleRound() gin.HandlerFunc {
	return a.handle(analysispb.AnalysisServiceClient.OracleRound)
}

// GetResult отдаёт результат по /api/results/:id.
func (a *Analysis) GetResult(c *gin.Context) {
	res, err := a.Client.GetResult(analystContext(c), &analysispb.Request{JobID: c.Param("id")})
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": status.Convert(err).Message()})
		return
	}
	c.JSON(http.StatusOK, NewResultView(res))
}
