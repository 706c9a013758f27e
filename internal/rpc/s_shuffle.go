package rpc

import (
	context "context"

	proto "github.com/golang/protobuf/proto"
	grpc "google.golang.org/grpc"
)

// MFetchPartitionRequest identifies one materialized shuffle partition
type MFetchPartitionRequest struct {
	JobId       string `protobuf:"bytes,1,opt,name=job_id,json=jobId,proto3" json:"job_id,omitempty"`
	StageId     int32  `protobuf:"varint,2,opt,name=stage_id,json=stageId,proto3" json:"stage_id,omitempty"`
	PartitionId int32  `protobuf:"varint,3,opt,name=partition_id,json=partitionId,proto3" json:"partition_id,omitempty"`
}

// Reset clears this message
func (m *MFetchPartitionRequest) Reset() { *m = MFetchPartitionRequest{} }

// String renders this message as text
func (m *MFetchPartitionRequest) String() string { return proto.CompactTextString(m) }

// ProtoMessage marks this type as a protobuf message
func (*MFetchPartitionRequest) ProtoMessage() {}

// GetJobId returns the job id of the requested partition
func (m *MFetchPartitionRequest) GetJobId() string {
	if m != nil {
		return m.JobId
	}
	return ""
}

// GetStageId returns the stage id of the requested partition
func (m *MFetchPartitionRequest) GetStageId() int32 {
	if m != nil {
		return m.StageId
	}
	return 0
}

// GetPartitionId returns the partition index of the requested partition
func (m *MFetchPartitionRequest) GetPartitionId() int32 {
	if m != nil {
		return m.PartitionId
	}
	return 0
}

// MBatchChunk carries one chunk of a compressed RecordBatch payload
type MBatchChunk struct {
	Data               []byte `protobuf:"bytes,1,opt,name=data,proto3" json:"data,omitempty"`
	BatchIndex         int32  `protobuf:"varint,2,opt,name=batch_index,json=batchIndex,proto3" json:"batch_index,omitempty"`
	TotalSizeBytes     int32  `protobuf:"varint,3,opt,name=total_size_bytes,json=totalSizeBytes,proto3" json:"total_size_bytes,omitempty"`
	RemainingSizeBytes int32  `protobuf:"varint,4,opt,name=remaining_size_bytes,json=remainingSizeBytes,proto3" json:"remaining_size_bytes,omitempty"`
	Append             int32  `protobuf:"varint,5,opt,name=append,proto3" json:"append,omitempty"`
	Checksum           uint64 `protobuf:"varint,6,opt,name=checksum,proto3" json:"checksum,omitempty"`
}

// Reset clears this message
func (m *MBatchChunk) Reset() { *m = MBatchChunk{} }

// String renders this message as text
func (m *MBatchChunk) String() string { return proto.CompactTextString(m) }

// ProtoMessage marks this type as a protobuf message
func (*MBatchChunk) ProtoMessage() {}

// GetData returns the chunk payload
func (m *MBatchChunk) GetData() []byte {
	if m != nil {
		return m.Data
	}
	return nil
}

// GetBatchIndex returns the index of the batch this chunk belongs to
func (m *MBatchChunk) GetBatchIndex() int32 {
	if m != nil {
		return m.BatchIndex
	}
	return 0
}

// GetTotalSizeBytes returns the total compressed size of the batch payload
func (m *MBatchChunk) GetTotalSizeBytes() int32 {
	if m != nil {
		return m.TotalSizeBytes
	}
	return 0
}

// GetRemainingSizeBytes returns the payload bytes still to come after this chunk
func (m *MBatchChunk) GetRemainingSizeBytes() int32 {
	if m != nil {
		return m.RemainingSizeBytes
	}
	return 0
}

// GetAppend returns the offset at which this chunk's data begins
func (m *MBatchChunk) GetAppend() int32 {
	if m != nil {
		return m.Append
	}
	return 0
}

// GetChecksum returns the xxhash checksum of the complete batch payload
func (m *MBatchChunk) GetChecksum() uint64 {
	if m != nil {
		return m.Checksum
	}
	return 0
}

func init() {
	proto.RegisterType((*MFetchPartitionRequest)(nil), "rpc.MFetchPartitionRequest")
	proto.RegisterType((*MBatchChunk)(nil), "rpc.MBatchChunk")
}

// ShuffleServiceClient is the client API for ShuffleService
type ShuffleServiceClient interface {
	// FetchPartition streams the complete materialized content of exactly one
	// shuffle partition to the requester, one compressed batch at a time.
	FetchPartition(ctx context.Context, in *MFetchPartitionRequest, opts ...grpc.CallOption) (ShuffleService_FetchPartitionClient, error)
}

type shuffleServiceClient struct {
	cc *grpc.ClientConn
}

// NewShuffleServiceClient constructs a ShuffleServiceClient over an existing connection
func NewShuffleServiceClient(cc *grpc.ClientConn) ShuffleServiceClient {
	return &shuffleServiceClient{cc}
}

// FetchPartition streams one shuffle partition from a remote executor
func (c *shuffleServiceClient) FetchPartition(ctx context.Context, in *MFetchPartitionRequest, opts ...grpc.CallOption) (ShuffleService_FetchPartitionClient, error) {
	stream, err := c.cc.NewStream(ctx, &_ShuffleService_serviceDesc.Streams[0], "/rpc.ShuffleService/FetchPartition", opts...)
	if err != nil {
		return nil, err
	}
	x := &shuffleServiceFetchPartitionClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// ShuffleService_FetchPartitionClient is the client side of a FetchPartition stream
type ShuffleService_FetchPartitionClient interface {
	Recv() (*MBatchChunk, error)
	grpc.ClientStream
}

type shuffleServiceFetchPartitionClient struct {
	grpc.ClientStream
}

// Recv reads the next chunk from a FetchPartition stream
func (x *shuffleServiceFetchPartitionClient) Recv() (*MBatchChunk, error) {
	m := new(MBatchChunk)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ShuffleServiceServer is the server API for ShuffleService
type ShuffleServiceServer interface {
	// FetchPartition streams the complete materialized content of exactly one
	// shuffle partition to the requester, one compressed batch at a time.
	FetchPartition(*MFetchPartitionRequest, ShuffleService_FetchPartitionServer) error
}

// RegisterShuffleServiceServer registers a ShuffleServiceServer with a grpc.Server
func RegisterShuffleServiceServer(s *grpc.Server, srv ShuffleServiceServer) {
	s.RegisterService(&_ShuffleService_serviceDesc, srv)
}

func _ShuffleService_FetchPartition_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(MFetchPartitionRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ShuffleServiceServer).FetchPartition(m, &shuffleServiceFetchPartitionServer{stream})
}

// ShuffleService_FetchPartitionServer is the server side of a FetchPartition stream
type ShuffleService_FetchPartitionServer interface {
	Send(*MBatchChunk) error
	grpc.ServerStream
}

type shuffleServiceFetchPartitionServer struct {
	grpc.ServerStream
}

// Send writes the next chunk to a FetchPartition stream
func (x *shuffleServiceFetchPartitionServer) Send(m *MBatchChunk) error {
	return x.ServerStream.SendMsg(m)
}

var _ShuffleService_serviceDesc = grpc.ServiceDesc{
	ServiceName: "rpc.ShuffleService",
	HandlerType: (*ShuffleServiceServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "FetchPartition",
			Handler:       _ShuffleService_FetchPartition_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "s_shuffle.proto",
}
