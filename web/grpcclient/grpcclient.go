package grpcclient

import (
	"log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/lbgsct/cryptobreak/proto/analysispb"
)

var (
	conn   *grpc.ClientConn
	Client analysispb.AnalysisServiceClient
)

// InitGRPCClient создаёт общее подключение к сервису анализа.
func InitGRPCClient(addr string) {
	var err error
	conn, err = grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Не удалось подключиться к gRPC-серверу: %v", err)
	}
	Client = analysispb.NewAnalysisServiceClient(conn)
	log.Printf("gRPC-клиент настроен на %s", addr)
}

func CloseGRPC() {
	if conn != nil {
		conn.Close()
	}
}
