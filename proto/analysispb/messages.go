// Package analysispb описывает сервис анализа шифртекстов поверх gRPC.
// Сообщения передаются как google.protobuf.Struct, поэтому шаг protoc не нужен.
package analysispb

import (
	"encoding/base64"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Request содержит параметры любой операции сервиса. Неиспользуемые поля остаются пустыми.
type Request struct {
	JobID      string
	Operation  string // фильтр для WatchResults
	Data       []byte
	Key        []byte
	IV         []byte
	BlockSize  int
	Padding    string
	KeySize    int
	MinKeySize int
	MaxKeySize int
	Runs       int
}

// Result описывает итог операции. Хранится в Redis и рассылается через RabbitMQ.
type Result struct {
	JobID     string
	Operation string
	Owner     string
	Mode      string
	Truth     string
	Key       []byte
	KeySize   int
	Score     float64
	Distance  float64
	Output    []byte
	Repeated  int
	Runs      int
	Correct   int
	Cached    bool
	CreatedAt time.Time
}

func (r *Request) ToProto() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"job_id":       r.JobID,
		"operation":    r.Operation,
		"data":         encodeBytes(r.Data),
		"key":          encodeBytes(r.Key),
		"iv":           encodeBytes(r.IV),
		"block_size":   r.BlockSize,
		"padding":      r.Padding,
		"key_size":     r.KeySize,
		"min_key_size": r.MinKeySize,
		"max_key_size": r.MaxKeySize,
		"runs":         r.Runs,
	})
}

func RequestFromProto(s *structpb.Struct) (*Request, error) {
	f := &fields{s: s}
	r := &Request{
		JobID:      f.text("job_id"),
		Operation:  f.text("operation"),
		BlockSize:  f.integer("block_size"),
		Padding:    f.text("padding"),
		KeySize:    f.integer("key_size"),
		MinKeySize: f.integer("min_key_size"),
		MaxKeySize: f.integer("max_key_size"),
		Runs:       f.integer("runs"),
	}
	if f.err != nil {
		return nil, f.err
	}
	var err error
	if r.Data, err = f.blob("data"); err != nil {
		return nil, err
	}
	if r.Key, err = f.blob("key"); err != nil {
		return nil, err
	}
	if r.IV, err = f.blob("iv"); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Result) ToProto() (*structpb.Struct, error) {
	var created string
	if !r.CreatedAt.IsZero() {
		created = r.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return structpb.NewStruct(map[string]interface{}{
		"job_id":     r.JobID,
		"operation":  r.Operation,
		"owner":      r.Owner,
		"mode":       r.Mode,
		"truth":      r.Truth,
		"key":        encodeBytes(r.Key),
		"key_size":   r.KeySize,
		"score":      finite(r.Score),
		"distance":   finite(r.Distance),
		"output":     encodeBytes(r.Output),
		"repeated":   r.Repeated,
		"runs":       r.Runs,
		"correct":    r.Correct,
		"cached":     r.Cached,
		"created_at": created,
	})
}

func ResultFromProto(s *structpb.Struct) (*Result, error) {
	f := &fields{s: s}
	r := &Result{
		JobID:     f.text("job_id"),
		Operation: f.text("operation"),
		Owner:     f.text("owner"),
		Mode:      f.text("mode"),
		Truth:     f.text("truth"),
		KeySize:   f.integer("key_size"),
		Score:     f.number("score"),
		Distance:  f.number("distance"),
		Repeated:  f.integer("repeated"),
		Runs:      f.integer("runs"),
		Correct:   f.integer("correct"),
		Cached:    s.GetFields()["cached"].GetBoolValue(),
	}
	if f.err != nil {
		return nil, f.err
	}
	var err error
	if r.Key, err = f.blob("key"); err != nil {
		return nil, err
	}
	if r.Output, err = f.blob("output"); err != nil {
		return nil, err
	}
	if created := f.text("created_at"); created != "" {
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("поле created_at: %w", err)
		}
	}
	return r, nil
}

// MarshalResult кодирует результат в JSON (protojson) для Redis и RabbitMQ.
func MarshalResult(r *Result) ([]byte, error) {
	s, err := r.ToProto()
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(s)
}

func UnmarshalResult(data []byte) (*Result, error) {
	s := new(structpb.Struct)
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return ResultFromProto(s)
}

func encodeBytes(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// +Inf и NaN не представимы в JSON, такие оценки передаются как 0.
func finite(f float64) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

// fields запоминает первую ошибку преобразования чисел
type fields struct {
	s   *structpb.Struct
	err error
}

func (f *fields) text(name string) string {
	return f.s.GetFields()[name].GetStringValue()
}

func (f *fields) number(name string) float64 {
	return f.s.GetFields()[name].GetNumberValue()
}

// Целые передаются как double; дробные и выходящие за int32 значения отвергаются.
func (f *fields) integer(name string) int {
	v := f.number(name)
	if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
		if f.err == nil {
			f.err = fmt.Errorf("поле %s: %v не является целым числом", name, v)
		}
		return 0
	}
	return int(v)
}

func (f *fields) blob(name string) ([]byte, error) {
	v := f.text(name)
	if v == "" {
		return nil, nil
	}
	b, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("поле %s: %w", name, err)
	}
	return b, nil
}
