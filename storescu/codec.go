package storescu

import (
	"fmt"

	"github.com/caio-sobreiro/dicomsend/dicom"
	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
	"github.com/caio-sobreiro/dicomsend/types"
)

// Codecs converts data sets between transfer syntaxes. The planner only
// asks whether a conversion exists; the engine performs it when the peer
// accepted a syntax other than the object's own.
type Codecs interface {
	CanTranscode(fromSyntax, toSyntax string) bool
	Transcode(data []byte, fromSyntax, toSyntax string) ([]byte, error)
}

// TranscodeFunc converts one data set
type TranscodeFunc func(data []byte) ([]byte, error)

type codecKey struct {
	from, to string
}

// CodecRegistry holds registered conversions. Conversions between the
// native encodings are always available.
type CodecRegistry struct {
	codecs map[codecKey]TranscodeFunc
}

// NewCodecRegistry returns a registry with only the native conversions
func NewCodecRegistry() *CodecRegistry {
	return &CodecRegistry{codecs: make(map[codecKey]TranscodeFunc)}
}

// Register adds a conversion from one transfer syntax to another
func (r *CodecRegistry) Register(fromSyntax, toSyntax string, fn TranscodeFunc) {
	r.codecs[codecKey{fromSyntax, toSyntax}] = fn
}

// CanTranscode implements Codecs
func (r *CodecRegistry) CanTranscode(fromSyntax, toSyntax string) bool {
	if fromSyntax == toSyntax {
		return true
	}
	if types.IsUncompressed(fromSyntax) && types.IsUncompressed(toSyntax) {
		return true
	}
	_, ok := r.codecs[codecKey{fromSyntax, toSyntax}]
	return ok
}

// Transcode implements Codecs
func (r *CodecRegistry) Transcode(data []byte, fromSyntax, toSyntax string) ([]byte, error) {
	if fromSyntax == toSyntax {
		return data, nil
	}
	if types.IsUncompressed(fromSyntax) && types.IsUncompressed(toSyntax) {
		return dicom.ConvertNative(data, fromSyntax, toSyntax)
	}
	fn, ok := r.codecs[codecKey{fromSyntax, toSyntax}]
	if !ok {
		return nil, fmt.Errorf("%w: no codec from %s to %s", dicomerrors.ErrUnsupportedTransfer, fromSyntax, toSyntax)
	}
	return fn(data)
}

// canDecompress reports whether data in syntax can be turned into any
// native encoding.
func canDecompress(codecs Codecs, syntax string) bool {
	for _, target := range types.UncompressedTransferSyntaxes() {
		if codecs.CanTranscode(syntax, target) {
			return true
		}
	}
	return false
}
