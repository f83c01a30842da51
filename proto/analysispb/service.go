package analysispb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "cryptobreak.AnalysisService"

const (
	OpPad                  = "Pad"
	OpEncryptCBC           = "EncryptCBC"
	OpDecryptCBC           = "DecryptCBC"
	OpDetectMode           = "DetectMode"
	OpBreakSingleByteXor   = "BreakSingleByteXor"
	OpBreakRepeatingKeyXor = "BreakRepeatingKeyXor"
	OpOracleRound          = "OracleRound"
	OpGetResult            = "GetResult"
	OpWatchResults         = "WatchResults"
)

func fullMethod(op string) string {
	return "/" + ServiceName + "/" + op
}

// AnalysisServiceServer реализуется сервером анализа.
type AnalysisServiceServer interface {
	Pad(context.Context, *Request) (*Result, error)
	EncryptCBC(context.Context, *Request) (*Result, error)
	DecryptCBC(context.Context, *Request) (*Result, error)
	DetectMode(context.Context, *Request) (*Result, error)
	BreakSingleByteXor(context.Context, *Request) (*Result, error)
	BreakRepeatingKeyXor(context.Context, *Request) (*Result, error)
	OracleRound(context.Context, *Request) (*Result, error)
	GetResult(context.Context, *Request) (*Result, error)
	WatchResults(*Request, AnalysisService_WatchResultsServer) error
}

// UnimplementedAnalysisServiceServer встраивается в реализации для совместимости.
type UnimplementedAnalysisServiceServer struct{}

func (UnimplementedAnalysisServiceServer) Pad(context.Context, *Request) (*Result, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Pad not implemented")
}
func (UnimplementedAnalysisServiceServer) EncryptCBC(context.Context, *Request) (*Result, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EncryptCBC not implemented")
}
func (UnimplementedAnalysisServiceServer) DecryptCBC(context.Context, *Request) (*Result, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DecryptCBC not implemented")
}
func (UnimplementedAnalysisServiceServer) DetectMode(context.Context, *Request) (*Result, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DetectMode not implemented")
}
func (UnimplementedAnalysisServiceServer) BreakSingleByteXor(context.Context, *Request) (*Result, error) {
	return nil, status.Errorf(codes.Unimplemented, "method BreakSingleByteXor not implemented")
}
func (UnimplementedAnalysisServiceServer) BreakRepeatingKeyXor(context.Context, *Request) (*Result, error) {
	return nil, status.Errorf(codes.Unimplemented, "method BreakRepeatingKeyXor not implemented")
}
func (UnimplementedAnalysisServiceServer) OracleRound(context.Context, *Request) (*Result, error) {
	return nil, status.Errorf(codes.Unimplemented, "method OracleRound not implemented")
}
func (UnimplementedAnalysisServiceServer) GetResult(context.Context, *Request) (*Result, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetResult not implemented")
}
func (UnimplementedAnalysisServiceServer) WatchResults(*Request, AnalysisService_WatchResultsServer) error {
	return status.Errorf(codes.Unimplemented, "method WatchResults not implemented")
}

type unaryCall func(AnalysisServiceServer, context.Context, *Request) (*Result, error)

func unaryHandler(op string, call unaryCall) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			r, err := RequestFromProto(req.(*structpb.Struct))
			if err != nil {
				return nil, status.Errorf(codes.InvalidArgument, "некорректный запрос: %v", err)
			}
			res, err := call(srv.(AnalysisServiceServer), ctx, r)
			if err != nil {
				return nil, err
			}
			return res.ToProto()
		}
		if interceptor == nil {
			return handler(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(op)}
		return interceptor(ctx, in, info, handler)
	}
}

type AnalysisService_WatchResultsServer interface {
	Send(*Result) error
	grpc.ServerStream
}

type watchResultsServer struct {
	grpc.ServerStream
}

func (x *watchResultsServer) Send(r *Result) error {
	m, err := r.ToProto()
	if err != nil {
		return err
	}
	return x.ServerStream.SendMsg(m)
}

func watchResultsHandler(srv interface{}, stream grpc.ServerStream) error {
	in := new(structpb.Struct)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	r, err := RequestFromProto(in)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "некорректный запрос: %v", err)
	}
	return srv.(AnalysisServiceServer).WatchResults(r, &watchResultsServer{stream})
}

var AnalysisService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AnalysisServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: OpPad, Handler: unaryHandler(OpPad, AnalysisServiceServer.Pad)},
		{MethodName: OpEncryptCBC, Handler: unaryHandler(OpEncryptCBC, AnalysisServiceServer.EncryptCBC)},
		{MethodName: OpDecryptCBC, Handler: unaryHandler(OpDecryptCBC, AnalysisServiceServer.DecryptCBC)},
		{MethodName: OpDetectMode, Handler: unaryHandler(OpDetectMode, AnalysisServiceServer.DetectMode)},
		{MethodName: OpBreakSingleByteXor, Handler: unaryHandler(OpBreakSingleByteXor, AnalysisServiceServer.BreakSingleByteXor)},
		{MethodName: OpBreakRepeatingKeyXor, Handler: unaryHandler(OpBreakRepeatingKeyXor, AnalysisServiceServer.BreakRepeatingKeyXor)},
		{MethodName: OpOracleRound, Handler: unaryHandler(OpOracleRound, AnalysisServiceServer.OracleRound)},
		{MethodName: OpGetResult, Handler: unaryHandler(OpGetResult, AnalysisServiceServer.GetResult)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    OpWatchResults,
			Handler:       watchResultsHandler,
			ServerStreams: true,
		},
	},
	Metadata: "analysis.proto",
}

func RegisterAnalysisServiceServer(s grpc.ServiceRegistrar, srv AnalysisServiceServer) {
	s.RegisterService(&AnalysisService_ServiceDesc, srv)
}

// AnalysisServiceClient вызывает методы сервиса анализа.
type AnalysisServiceClient interface {
	Pad(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Result, error)
	EncryptCBC(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Result, error)
	DecryptCBC(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Result, error)
	DetectMode(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Result, error)
	BreakSingleByteXor(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Result, error)
	BreakRepeatingKeyXor(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Result, error)
	OracleRound(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Result, error)
	GetResult(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Result, error)
	WatchResults(ctx context.Context, in *Request, opts ...grpc.CallOption) (AnalysisService_WatchResultsClient, error)
}

type analysisServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAnalysisServiceClient(cc grpc.ClientConnInterface) AnalysisServiceClient {
	return &analysisServiceClient{cc}
}

func (c *analysisServiceClient) invoke(ctx context.Context, op string, in *Request, opts []grpc.CallOption) (*Result, error) {
	req, err := in.ToProto()
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(op), req, out, opts...); err != nil {
		return nil, err
	}
	return ResultFromProto(out)
}

func (c *analysisServiceClient) Pad(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Result, error) {
	return c.invoke(ctx, OpPad, in, opts)
}

func (c *analysisServiceClient) EncryptCBC(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Result, error) {
	return c.invoke(ctx, OpEncryptCBC, in, opts)
}

func (c *analysisServiceClient) DecryptCBC(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Result, error) {
	return c.invoke(ctx, OpDecryptCBC, in, opts)
}

func (c *analysisServiceClient) DetectMode(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Result, error) {
	return c.invoke(ctx, OpDetectMode, in, opts)
}

func (c *analysisServiceClient) BreakSingleByteXor(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Result, error) {
	return c.invoke(ctx, OpBreakSingleByteXor, in, opts)
}

func (c *analysisServiceClient) BreakRepeatingKeyXor(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Result, error) {
	return c.invoke(ctx, OpBreakRepeatingKeyXor, in, opts)
}

func (c *analysisServiceClient) OracleRound(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Result, error) {
	return c.invoke(ctx, OpOracleRound, in, opts)
}

func (c *analysisServiceClient) GetResult(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Result, error) {
	return c.invoke(ctx, OpGetResult, in, opts)
}

func (c *analysisServiceClient) WatchResults(ctx context.Context, in *Request, opts ...grpc.CallOption) (AnalysisService_WatchResultsClient, error) {
	stream, err := c.cc.NewStream(ctx, &AnalysisService_ServiceDesc.Streams[0], fullMethod(OpWatchResults), opts...)
	if err != nil {
		return nil, err
	}
	req, err := in.ToProto()
	if err != nil {
		return nil, err
	}
	x := &watchResultsClient{stream}
	if err := x.ClientStream.SendMsg(req); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type AnalysisService_WatchResultsClient interface {
	Recv() (*Result, error)
	grpc.ClientStream
}

type watchResultsClient struct {
	grpc.ClientStream
}

func (x *watchResultsClient) Recv() (*Result, error) {
	m := new(structpb.Struct)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return ResultFromProto(m)
}
