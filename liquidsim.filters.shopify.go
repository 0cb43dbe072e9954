package liquidsim

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"

	"github.com/itsatony/go-liquidsim/internal"
)

func shopifyFilters() []*Filter {
	return []*Filter{
		{Name: FilterNameJSON, MinArgs: 0, MaxArgs: 0, Fn: jsonFilter},
		{Name: FilterNameMD5, MinArgs: 0, MaxArgs: 0, Fn: md5Filter},
	}
}

// jsonFilter encodes input as compact JSON without HTML escaping. Map keys
// come out sorted.
func jsonFilter(input any, _ []any) (any, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(input); err != nil {
		return nil, err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// md5Filter returns the hex MD5 digest of the input's string form.
func md5Filter(input any, _ []any) (any, error) {
	sum := md5.Sum([]byte(internal.ToLiquidString(input)))
	return hex.EncodeToString(sum[:]), nil
}
