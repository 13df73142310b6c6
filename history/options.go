package history

import (
	"io"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/tiendc/go-deepcopy"
	"go.uber.org/zap"
)

// Cloner deep-copies src into dst. Both arguments are pointers to the same type.
type Cloner func(dst, src any) error

// DeepCopy clones values with github.com/tiendc/go-deepcopy.
func DeepCopy(dst, src any) error {
	return deepcopy.Copy(dst, src)
}

// Option configures a Resettable.
type Option func(*options)

type options struct {
	cloner  Cloner
	logger  *zap.Logger
	clock   func() time.Time
	entropy io.Reader
}

func defaultOptions() options {
	return options{
		cloner:  DeepCopy,
		logger:  zap.NewNop(),
		clock:   time.Now,
		entropy: ulid.DefaultEntropy(),
	}
}

// WithCloner sets the function used to snapshot values for automatic undo.
// A nil cloner disables copying and snapshots share memory with the object.
func WithCloner(cloner Cloner) Option {
	return func(o *options) {
		o.cloner = cloner
	}
}

// WithLogger sets the logger used for history diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock sets the clock used to timestamp history entries.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithEntropy sets the entropy source for entry IDs.
func WithEntropy(entropy io.Reader) Option {
	return func(o *options) {
		if entropy != nil {
			o.entropy = entropy
		}
	}
}
