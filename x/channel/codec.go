package channel

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/paychan"
)

type Status int32

const (
	Status_INVALID Status = 0
	Status_OPEN    Status = 1
	Status_CLOSED  Status = 2
)

var Status_name = map[int32]string{
	0: "INVALID",
	1: "OPEN",
	2: "CLOSED",
}

var Status_value = map[string]int32{
	"INVALID": 0,
	"OPEN":    1,
	"CLOSED":  2,
}

func (x Status) String() string {
	return proto.EnumName(Status_name, int32(x))
}

// Channel is the state of a single payment channel. It is stored under the
// channel id, which is also the address of the channel escrow account.
//
// All amounts are big-endian unsigned integers, at most 32 bytes.
type Channel struct {
	// Payer deposits the funds and receives any remainder.
	Payer paychan.Address `protobuf:"bytes,1,opt,name=payer,proto3,casttype=github.com/iov-one/paychan.Address" json:"payer,omitempty"`
	// Payee is the only party that can sign a claim.
	Payee paychan.Address `protobuf:"bytes,2,opt,name=payee,proto3,casttype=github.com/iov-one/paychan.Address" json:"payee,omitempty"`
	// Deposit is the amount escrowed when the channel was opened.
	Deposit []byte `protobuf:"bytes,3,opt,name=deposit,proto3" json:"deposit,omitempty"`
	// Balance is the amount still held in escrow.
	Balance []byte `protobuf:"bytes,4,opt,name=balance,proto3" json:"balance,omitempty"`
	// Timeout is the unix time after which the payer can reclaim the
	// balance.
	Timeout  paychan.UnixTime `protobuf:"varint,5,opt,name=timeout,proto3,casttype=github.com/iov-one/paychan.UnixTime" json:"timeout,omitempty"`
	Status   Status           `protobuf:"varint,6,opt,name=status,proto3,enum=channel.Status" json:"status,omitempty"`
	Settled  []byte           `protobuf:"bytes,7,opt,name=settled,proto3" json:"settled,omitempty"`
	Refunded []byte           `protobuf:"bytes,8,opt,name=refunded,proto3" json:"refunded,omitempty"`
	ClosedAt paychan.UnixTime `protobuf:"varint,9,opt,name=closed_at,json=closedAt,proto3,casttype=github.com/iov-one/paychan.UnixTime" json:"closed_at,omitempty"`
	Memo     string           `protobuf:"bytes,10,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *Channel) Reset()         { *m = Channel{} }
func (m *Channel) String() string { return proto.CompactTextString(m) }
func (*Channel) ProtoMessage()    {}

func (m *Channel) GetPayer() paychan.Address {
	if m != nil {
		return m.Payer
	}
	return nil
}

func (m *Channel) GetPayee() paychan.Address {
	if m != nil {
		return m.Payee
	}
	return nil
}

func (m *Channel) GetStatus() Status {
	if m != nil {
		return m.Status
	}
	return Status_INVALID
}

type Configuration struct {
	// If set, a channel can be opened only with a timeout in the future.
	StrictTimeout bool `protobuf:"varint,1,opt,name=strict_timeout,json=strictTimeout,proto3" json:"strict_timeout,omitempty"`
	// If set, only the payer can expire a channel.
	PayerOnlyExpire bool `protobuf:"varint,2,opt,name=payer_only_expire,json=payerOnlyExpire,proto3" json:"payer_only_expire,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

func init() {
	proto.RegisterEnum("channel.Status", Status_name, Status_value)
	proto.RegisterType((*Channel)(nil), "channel.Channel")
	proto.RegisterType((*Configuration)(nil), "channel.Configuration")
}
