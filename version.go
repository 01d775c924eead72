package madmp

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/reoring/madmp/v1_0"
	"github.com/reoring/madmp/v1_1"
)

// Version is the closed union of supported schema releases.
type Version uint8

const (
	V1_0 Version = iota + 1
	V1_1
)

// DefaultVersion is selected when neither the caller nor the environment
// picks a release.
const DefaultVersion = V1_1

// EnvVersion is the environment variable consulted when no version is given
// explicitly.
const EnvVersion = "MADMP_SCHEMA_VERSION"

func (v Version) String() string {
	switch v {
	case V1_0:
		return "1.0"
	case V1_1:
		return "1.1"
	default:
		return fmt.Sprintf("Version(%d)", uint8(v))
	}
}

// ParseVersion maps a version string onto the closed union.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "1.0":
		return V1_0, nil
	case "1.1":
		return V1_1, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s)
	}
}

// Document is a validated plan of any schema version. Concrete types are
// *v1_0.DMP and *v1_1.DMP.
type Document interface {
	SchemaVersion() string
}

// Schema is the schema-definition value a Version resolves to: a uniform
// decode capability over the versioned entity model.
type Schema struct {
	version Version
	decode  func(ctx context.Context, v any) (Document, error)
}

// Version reports which release this schema validates.
func (s Schema) Version() Version { return s.version }

// Decode validates the value of the "dmp" envelope key and constructs the
// typed model instance.
func (s Schema) Decode(ctx context.Context, v any) (Document, error) {
	return s.decode(ctx, v)
}

func schemaFor(v Version) Schema {
	switch v {
	case V1_0:
		return Schema{version: V1_0, decode: func(ctx context.Context, raw any) (Document, error) {
			d, err := v1_0.DecodeDMP(ctx, raw)
			if err != nil {
				// A typed-nil *DMP must not escape as a non-nil Document.
				return nil, err
			}
			return d, nil
		}}
	default:
		return Schema{version: V1_1, decode: func(ctx context.Context, raw any) (Document, error) {
			d, err := v1_1.DecodeDMP(ctx, raw)
			if err != nil {
				return nil, err
			}
			return d, nil
		}}
	}
}

// resolveVersion implements the selection chain: explicit value, then the
// environment, then the default.
func resolveVersion(s string) (Version, error) {
	if s == "" {
		s = os.Getenv(EnvVersion)
	}
	if s == "" {
		return DefaultVersion, nil
	}
	return ParseVersion(s)
}

// ---- process-wide registry (select once, validate many) ----

var (
	registryMu      sync.Mutex
	registryVersion Version // zero until first SetVersion/Load
)

// SetVersion selects the process-wide schema version. An empty argument
// falls back to EnvVersion and then to DefaultVersion. An unsupported value
// fails with ErrUnsupportedVersion naming the rejected version and leaves
// the previous selection untouched. There is no way back to the unset state.
func SetVersion(version string) error {
	v, err := resolveVersion(version)
	if err != nil {
		return err
	}
	registryMu.Lock()
	registryVersion = v
	registryMu.Unlock()
	return nil
}

// Load returns the schema for the currently selected version, resolving the
// default on first use. An invalid EnvVersion value is ignored here; it only
// surfaces through SetVersion.
func Load() Schema {
	registryMu.Lock()
	defer registryMu.Unlock()
	if registryVersion == 0 {
		if v, err := resolveVersion(""); err == nil {
			registryVersion = v
		} else {
			registryVersion = DefaultVersion
		}
	}
	return schemaFor(registryVersion)
}

// ---- session handle (per-call isolation) ----

// Session pins one schema version for a sequence of validate/export calls,
// avoiding the process-wide registry. Sessions are immutable and safe for
// concurrent use.
type Session struct {
	schema Schema
}

// NewSession resolves version ("" falls back to EnvVersion, then
// DefaultVersion) and returns a handle pinned to it.
func NewSession(version string) (*Session, error) {
	v, err := resolveVersion(version)
	if err != nil {
		return nil, err
	}
	return &Session{schema: schemaFor(v)}, nil
}

// Schema returns the schema this session is pinned to.
func (s *Session) Schema() Schema { return s.schema }
