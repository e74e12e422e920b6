package codec

import (
	"fmt"
	"slices"

	"github.com/arloliu/intpack/errs"
)

// registry maps codec names to their default instances. It is built once in
// init and only read afterwards.
var (
	registry   map[string]Codec
	sortedKeys []string
)

func init() {
	codecs := []Codec{
		NewCopy(),
		NewVByte(),
		NewVarint(),
		NewVarIntG8IU(),
		NewGroupVarint(),
		NewBinaryPacking(),
		NewSIMDBinaryPacking(),
		mustCodec(NewFastPFOR("fastpfor", 128, false)),
		mustCodec(NewFastPFOR("fastpfor256", 256, false)),
		mustCodec(NewFastPFOR("simdfastpfor128", 128, true)),
		mustCodec(NewFastPFOR("simdfastpfor256", 256, true)),
		NewSimplePFOR(),
		mustCodec(NewNewPFOR()),
		NewOptPFOR(),
	}

	registry = make(map[string]Codec, len(codecs))
	for _, c := range codecs {
		if _, dup := registry[c.Name()]; dup {
			panic("codec: duplicate registration of " + c.Name())
		}
		registry[c.Name()] = c
		sortedKeys = append(sortedKeys, c.Name())
	}
	slices.Sort(sortedKeys)
}

func mustCodec(c Codec, err error) Codec {
	if err != nil {
		panic(err)
	}

	return c
}

// Get returns the registered codec with the given name.
//
// The returned codec is shared and safe for concurrent use.
//
// Returns:
//   - Codec: the codec instance
//   - error: wraps errs.ErrUnknownCodec if no codec has that name
func Get(name string) (Codec, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownCodec, name)
	}

	return c, nil
}

// Names returns the names of all registered codecs in ascending order. The
// slice is a fresh copy owned by the caller.
func Names() []string {
	return slices.Clone(sortedKeys)
}
