package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/store"
	"github.com/iov-one/paychan/weavetest/assert"
)

type testConfig struct {
	Number int64  `protobuf:"varint,1,opt,name=number,proto3" json:"number,omitempty"`
	Text   string `protobuf:"bytes,2,opt,name=text,proto3" json:"text,omitempty"`
	Flag   bool   `protobuf:"varint,3,opt,name=flag,proto3" json:"flag,omitempty"`
}

func (m *testConfig) Reset()         { *m = testConfig{} }
func (m *testConfig) String() string { return proto.CompactTextString(m) }
func (*testConfig) ProtoMessage()    {}

func (m *testConfig) Validate() error {
	if m.Number < 0 {
		return errors.Wrap(errors.ErrInput, "negative number")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		conf        *testConfig
		wantSaveErr *errors.Error
	}{
		"all fields": {
			conf: &testConfig{Number: 852151421, Text: "foobar", Flag: true},
		},
		"invalid configuration cannot be saved": {
			conf:        &testConfig{Number: -1},
			wantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.conf); !tc.wantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.wantSaveErr != nil {
				return
			}
			var got testConfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.conf, &got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	var conf testConfig
	assert.IsErr(t, errors.ErrNotFound, Load(store.MemStore(), "mypkg", &conf))
}

func TestInitConfig(t *testing.T) {
	db := store.MemStore()
	opts := paychan.Options{
		"conf": json.RawMessage(`{"mypkg": {"number": 7, "text": "hi"}}`),
	}

	assert.Nil(t, InitConfig(db, opts, "mypkg", &testConfig{}))
	var got testConfig
	assert.Nil(t, Load(db, "mypkg", &got))
	assert.Equal(t, testConfig{Number: 7, Text: "hi"}, got)

	// other packages are left without configuration
	assert.Nil(t, InitConfig(db, opts, "otherpkg", &testConfig{}))
	assert.IsErr(t, errors.ErrNotFound, Load(db, "otherpkg", &got))

	bad := paychan.Options{
		"conf": json.RawMessage(`{"mypkg": {"number": -3}}`),
	}
	assert.IsErr(t, errors.ErrInput, InitConfig(db, bad, "mypkg", &testConfig{}))
}
