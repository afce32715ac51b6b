// Package envx reads configuration overrides from a dotenv file and the
// process environment.
package envx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/flagx"
	"github.com/joho/godotenv"
)

// DefaultFile is read when no -env flag is given. A missing default file is
// not an error.
const DefaultFile = ".env"

// Source resolves variables. Process environment wins over the dotenv file.
type Source struct {
	file   map[string]string
	lookup func(string) (string, bool)
}

// Load builds a Source from the dotenv file named by -env in args, or from
// DefaultFile when present.
func Load(args []string) (*Source, error) {
	path := flagx.EnvFileFlag(args)
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	file, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			file = map[string]string{}
		} else {
			return nil, fmt.Errorf("read env file %s: %w", path, err)
		}
	}
	return &Source{file: file, lookup: os.LookupEnv}, nil
}

// FromMap builds a Source over fixed values only. Used by tests.
func FromMap(vars map[string]string) *Source {
	return &Source{file: vars, lookup: func(string) (string, bool) { return "", false }}
}

func (s *Source) Get(key string) (string, bool) {
	if v, ok := s.lookup(key); ok {
		return v, true
	}
	v, ok := s.file[key]
	return v, ok
}

// String overwrites dst when key is set to a non-empty value.
func (s *Source) String(dst *string, key string) {
	if v, ok := s.Get(key); ok && v != "" {
		*dst = v
	}
}

func (s *Source) Int(dst *int, key string) error {
	v, ok := s.Get(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func (s *Source) Bool(dst *bool, key string) error {
	v, ok := s.Get(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func (s *Source) Duration(dst *time.Duration, key string) error {
	v, ok := s.Get(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
