package paychan

import (
	"encoding/json"
)

// Msg is a single operation that can be delivered to the ledger. The path
// is used to select the handler.
type Msg interface {
	// Path returns the routing path for this message.
	Path() string

	// Validate performs a stateless sanity check of the message.
	Validate() error
}

// Handler is a core engine that can process a few specific messages.
// This could represent "open a channel", or "settle a claim".
type Handler interface {
	Deliver(ctx Context, store KVStore, msg Msg) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like logging, or panic recovery, to many Handlers
type Decorator interface {
	Deliver(ctx Context, store KVStore, msg Msg, next Handler) (*DeliverResult, error)
}

// DeliverResult captures any non-error result of a message.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the id of a newly
	// created channel.
	Data []byte
	// Log is a human-readable informational string.
	Log string
}

// HandlerFunc is a function that implements the Handler interface.
type HandlerFunc func(ctx Context, store KVStore, msg Msg) (*DeliverResult, error)

// Deliver calls the function itself.
func (f HandlerFunc) Deliver(ctx Context, store KVStore, msg Msg) (*DeliverResult, error) {
	return f(ctx, store, msg)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(path string, h Handler)
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// Validater is any struct that can be validated.
type Validater interface {
	Validate() error
}
