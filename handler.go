package swapd

import (
	"encoding/json"

	"github.com/iov-one/swapd/errors"
)

// Handler is a core engine that can process a few specific messages
// This could represent "open an escrow", or "mint a token"
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like authentication, or logging, to many Handlers
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(path string, h Handler)
}

// Msg is message for the ledger to take an action
// (Make a state transition). It is just the request, and
// must be validated by the Handlers. All authentication
// information is in the wrapping Tx.
type Msg interface {
	// Path is used by the Router to locate the proper Handler.
	// Must be alphanumeric [0-9A-Za-z_/]+
	Path() string

	// Validate performs a sanity check that does not touch the store.
	Validate() error
}

// Tx represent the data sent from the user to the ledger.
// It includes the actual message, along with information needed
// to authenticate the sender (cryptographic signatures).
type Tx interface {
	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// TxDecoder can parse bytes into a Tx
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message of the transaction, validates it and
// returns it. Handlers should always load their message through it.
func LoadMsg(tx Tx) (Msg, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "tx has no msg")
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid msg")
	}
	return msg, nil
}

// Tag is a key-value pair attached to a successful delivery,
// used by clients to subscribe to or search for transactions.
type Tag struct {
	Key   string
	Value string
}

// CheckResult captures any non-error abci result
// to make sure people use error for error cases
type CheckResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
	// GasAllocated is the maximum units of work we allow this tx to perform
	GasAllocated int64
}

// DeliverResult captures any non-error abci result
// to make sure people use error for error cases
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
	// Tags are used for indexing
	Tags []Tag
	// GasUsed is the units of work the tx consumed
	GasUsed int64
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
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse %q options: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(opts Options, db KVStore) error
}

// ChainInitializers lets you initialize many extensions at once
type ChainInitializers []Initializer

var _ Initializer = ChainInitializers(nil)

// FromGenesis calls all Initializers in order
func (c ChainInitializers) FromGenesis(opts Options, db KVStore) error {
	for _, i := range c {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
