package types

import "sync"

// Registry is a UID dictionary for SOP classes and transfer syntaxes.
// Components that need name lookups or classification take a *Registry so
// tests can run against a dictionary of their own.
type Registry struct {
	sopClasses       map[string]SOPClassInfo
	transferSyntaxes map[string]TransferSyntaxInfo
}

// NewRegistry returns a registry preloaded with the built-in dictionary
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	for _, info := range builtinSOPClasses {
		r.sopClasses[info.UID] = info
	}
	for _, info := range builtinTransferSyntaxes {
		r.transferSyntaxes[info.UID] = info
	}
	return r
}

// NewEmptyRegistry returns a registry with no entries
func NewEmptyRegistry() *Registry {
	return &Registry{
		sopClasses:       make(map[string]SOPClassInfo),
		transferSyntaxes: make(map[string]TransferSyntaxInfo),
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared read-only built-in registry.
// Callers that register private UIDs should use NewRegistry instead.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// RegisterSOPClass adds or replaces a SOP class entry
func (r *Registry) RegisterSOPClass(info SOPClassInfo) {
	r.sopClasses[info.UID] = info
}

// RegisterTransferSyntax adds or replaces a transfer syntax entry
func (r *Registry) RegisterTransferSyntax(info TransferSyntaxInfo) {
	r.transferSyntaxes[info.UID] = info
}

// SOPClass looks up a SOP class
func (r *Registry) SOPClass(uid string) (SOPClassInfo, bool) {
	info, ok := r.sopClasses[uid]
	return info, ok
}

// TransferSyntax looks up a transfer syntax
func (r *Registry) TransferSyntax(uid string) (TransferSyntaxInfo, bool) {
	info, ok := r.transferSyntaxes[uid]
	return info, ok
}

// Category classifies a transfer syntax. The native encodings are recognised
// even when they are missing from the registry.
func (r *Registry) Category(uid string) TransferSyntaxCategory {
	if IsUncompressed(uid) {
		return CategoryUncompressed
	}
	if info, ok := r.transferSyntaxes[uid]; ok {
		return info.Category
	}
	return CategoryUnknown
}

// SOPClassName returns the dictionary name of uid, or uid itself when unknown
func (r *Registry) SOPClassName(uid string) string {
	if info, ok := r.sopClasses[uid]; ok {
		return info.Name
	}
	return uid
}

// TransferSyntaxName returns the dictionary name of uid, or uid itself when unknown
func (r *Registry) TransferSyntaxName(uid string) string {
	if info, ok := r.transferSyntaxes[uid]; ok {
		return info.Name
	}
	return uid
}
