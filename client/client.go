package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/lbgsct/cryptobreak/algorithm"
	"github.com/lbgsct/cryptobreak/proto/analysispb"
)

const menu = `
1) Набивка PKCS#7
2) Шифрование AES-CBC
3) Расшифрование AES-CBC
4) Определение режима (ECB/CBC)
5) Вскрытие однобайтового XOR
6) Вскрытие повторяющегося XOR
7) Раунд оракула
8) Результат по ID задачи
9) Подписка на результаты
0) Выход`

type session struct {
	client analysispb.AnalysisServiceClient
	reader *bufio.Reader
	ctx    context.Context
}

func main() {
	addr := flag.String("addr", getEnv("GRPC_ADDR", "localhost:50051"), "Адрес gRPC-сервера")
	analyst := flag.String("analyst", "", "Имя аналитика (по умолчанию случайное)")
	token := flag.String("token", os.Getenv("ANALYST_TOKEN"), "JWT, выданный веб-шлюзом при входе")
	flag.Parse()

	// Установка соединения с сервером gRPC
	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Не удалось подключиться к серверу: %v", err)
	}
	defer conn.Close()

	name := *analyst
	if name == "" {
		name = "console-" + uuid.New().String()[:8]
	}
	fmt.Printf("Аналитик: %s\n", name)

	ctx := metadata.AppendToOutgoingContext(context.Background(), "x-analyst", name)
	if *token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+*token)
	}
	s := &session{
		client: analysispb.NewAnalysisServiceClient(conn),
		reader: bufio.NewReader(os.Stdin),
		ctx:    ctx,
	}

	for {
		fmt.Println(menu)
		choice := s.ask("Выберите действие: ")
		var res *analysispb.Result
		switch choice {
		case "1":
			res, err = s.pad()
		case "2":
			res, err = s.encryptCBC()
		case "3":
			res, err = s.decryptCBC()
		case "4":
			res, err = s.detectMode()
		case "5":
			res, err = s.singleXor()
		case "6":
			res, err = s.repeatingXor()
		case "7":
			res, err = s.oracle()
		case "8":
			res, err = s.client.GetResult(s.ctx, &analysispb.Request{JobID: s.ask("ID задачи: ")})
		case "9":
			go s.watch(s.ask("Фильтр операции (Enter для всех): "))
			continue
		case "0", "":
			return
		default:
			fmt.Println("Неизвестное действие")
			continue
		}
		if err != nil {
			fmt.Printf("Ошибка: %v\n", err)
			continue
		}
		printResult(res)
	}
}

func (s *session) ask(prompt string) string {
	fmt.Print(prompt)
	line, _ := s.reader.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

func (s *session) askBytes(prompt string) ([]byte, error) {
	return parseInput(s.ask(prompt + " (текст, hex:... или b64:...): "))
}

func (s *session) pad() (*analysispb.Result, error) {
	data, err := s.askBytes("Данные")
	if err != nil {
		return nil, err
	}
	size, err := parseNumber(s.ask("Размер блока [16]: "), 16)
	if err != nil {
		return nil, err
	}
	return s.client.Pad(s.ctx, &analysispb.Request{Data: data, BlockSize: size, Padding: "PKCS7"})
}

func (s *session) keyAndIV() ([]byte, []byte, error) {
	key, err := s.askBytes("Ключ, 16 байт")
	if err != nil {
		return nil, nil, err
	}
	iv, err := s.askBytes("IV, 16 байт")
	if err != nil {
		return nil, nil, err
	}
	return key, iv, nil
}

// Шифртекст сервера сверяется с локальным шифрованием
func (s *session) encryptCBC() (*analysispb.Result, error) {
	data, err := s.askBytes("Открытый текст")
	if err != nil {
		return nil, err
	}
	key, iv, err := s.keyAndIV()
	if err != nil {
		return nil, err
	}

	cc, err := algorithm.NewCryptoSymmetricContext(key, algorithm.NewAES(), algorithm.CBC, algorithm.PKCS7, iv, 16)
	if err != nil {
		return nil, err
	}
	localChan, errChan := cc.EncryptAsync(data)

	res, err := s.client.EncryptCBC(s.ctx, &analysispb.Request{Data: data, Key: key, IV: iv, Padding: "PKCS7"})
	if err != nil {
		return nil, err
	}

	select {
	case local := <-localChan:
		if !bytes.Equal(local, res.Output) {
			fmt.Println("Внимание: шифртекст сервера не совпадает с локальным")
		}
	case err := <-errChan:
		fmt.Printf("Локальное шифрование не удалось: %v\n", err)
	}
	return res, nil
}

func (s *session) decryptCBC() (*analysispb.Result, error) {
	data, err := s.askBytes("Шифртекст")
	if err != nil {
		return nil, err
	}
	key, iv, err := s.keyAndIV()
	if err != nil {
		return nil, err
	}
	padding := ""
	if strings.EqualFold(s.ask("Снять набивку PKCS7? (y/n): "), "y") {
		padding = "PKCS7"
	}
	return s.client.DecryptCBC(s.ctx, &analysispb.Request{Data: data, Key: key, IV: iv, Padding: padding})
}

func (s *session) detectMode() (*analysispb.Result, error) {
	data, err := s.askBytes("Шифртекст")
	if err != nil {
		return nil, err
	}
	return s.client.DetectMode(s.ctx, &analysispb.Request{Data: data})
}

func (s *session) singleXor() (*analysispb.Result, error) {
	data, err := s.askBytes("Шифртекст")
	if err != nil {
		return nil, err
	}
	return s.client.BreakSingleByteXor(s.ctx, &analysispb.Request{Data: data})
}

func (s *session) repeatingXor() (*analysispb.Result, error) {
	data, err := s.askBytes("Шифртекст")
	if err != nil {
		return nil, err
	}
	minSize, err := parseNumber(s.ask(fmt.Sprintf("Минимальная длина ключа [%d]: ", algorithm.DefaultMinKeySize)), algorithm.DefaultMinKeySize)
	if err != nil {
		return nil, err
	}
	maxSize, err := parseNumber(s.ask(fmt.Sprintf("Максимальная длина ключа [%d]: ", algorithm.DefaultMaxKeySize)), algorithm.DefaultMaxKeySize)
	if err != nil {
		return nil, err
	}
	return s.client.BreakRepeatingKeyXor(s.ctx, &analysispb.Request{Data: data, MinKeySize: minSize, MaxKeySize: maxSize})
}

func (s *session) oracle() (*analysispb.Result, error) {
	runs, err := parseNumber(s.ask("Число прогонов [1]: "), 1)
	if err != nil {
		return nil, err
	}
	return s.client.OracleRound(s.ctx, &analysispb.Request{Runs: runs})
}

func (s *session) watch(operation string) {
	stream, err := s.client.WatchResults(s.ctx, &analysispb.Request{Operation: operation})
	if err != nil {
		log.Printf("Ошибка при подписке на результаты: %v", err)
		return
	}
	fmt.Println("Подписка оформлена")
	for {
		res, err := stream.Recv()
		if err != nil {
			log.Printf("Ошибка при получении результата из потока: %v", err)
			return
		}
		fmt.Printf("\n[%s] %s от %s: %s\n", res.CreatedAt.Local().Format(time.TimeOnly), res.Operation, res.Owner, res.JobID)
	}
}

func printResult(res *analysispb.Result) {
	fmt.Printf("Задача: %s", res.JobID)
	if res.Cached {
		fmt.Print(" (из кеша)")
	}
	fmt.Println()
	if res.Mode != "" {
		fmt.Printf("Режим: %s\n", res.Mode)
	}
	if res.Truth != "" {
		fmt.Printf("Истинный режим: %s\n", res.Truth)
	}
	if res.Repeated > 0 {
		fmt.Printf("Повторяющихся блоков: %d\n", res.Repeated)
	}
	if len(res.Key) > 0 {
		fmt.Printf("Ключ (%d байт): %s\n", res.KeySize, formatOutput(res.Key))
	}
	if res.Operation == analysispb.OpBreakSingleByteXor {
		fmt.Printf("Оценка: %.4f\n", res.Score)
	}
	if res.Distance > 0 {
		fmt.Printf("Нормированное расстояние: %.4f\n", res.Distance)
	}
	if res.Runs > 1 {
		fmt.Printf("Верно: %d из %d\n", res.Correct, res.Runs)
	}
	if len(res.Output) > 0 {
		fmt.Printf("Результат: %s\n", formatOutput(res.Output))
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
