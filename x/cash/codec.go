package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/paychan"
)

// Wallet holds the balance of a single account.
type Wallet struct {
	// Address of the account owning the funds.
	Address paychan.Address `protobuf:"bytes,1,opt,name=address,proto3,casttype=github.com/iov-one/paychan.Address" json:"address,omitempty"`
	// Balance is a big-endian unsigned integer, at most 32 bytes.
	Balance []byte `protobuf:"bytes,2,opt,name=balance,proto3" json:"balance,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

func (m *Wallet) GetAddress() paychan.Address {
	if m != nil {
		return m.Address
	}
	return nil
}

func (m *Wallet) GetBalance() []byte {
	if m != nil {
		return m.Balance
	}
	return nil
}

func init() {
	proto.RegisterType((*Wallet)(nil), "cash.Wallet")
}
