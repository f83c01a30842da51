package main

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type analystKey struct{}

// Те же поля, что выдаёт веб-шлюз при входе
type analystClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Проверка токена из метаданных authorization: Bearer <token>
func authenticate(ctx context.Context, jwtKey []byte) (context.Context, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	var tokenString string
	if v := md.Get("authorization"); len(v) > 0 {
		tokenString = strings.TrimPrefix(v[0], "Bearer ")
	}
	if tokenString == "" {
		return nil, status.Error(codes.Unauthenticated, "отсутствует токен")
	}

	claims := &analystClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtKey, nil
	})
	if err != nil || !token.Valid || claims.Username == "" {
		return nil, status.Error(codes.Unauthenticated, "недействительный токен")
	}
	return context.WithValue(ctx, analystKey{}, claims.Username), nil
}

func authUnaryInterceptor(jwtKey []byte) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		ctx, err := authenticate(ctx, jwtKey)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

type authenticatedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *authenticatedStream) Context() context.Context {
	return s.ctx
}

func authStreamInterceptor(jwtKey []byte) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx, err := authenticate(ss.Context(), jwtKey)
		if err != nil {
			return err
		}
		return handler(srv, &authenticatedStream{ServerStream: ss, ctx: ctx})
	}
}
