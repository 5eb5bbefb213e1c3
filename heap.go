package reach

// Heap owns one VM's managed cells and performs mark-sweep collection
// (spec §4.1). Unlike original_source's process-wide global allocator
// registry, this registry is owned per-Heap — one per VM — because Go test
// binaries run many independent VMs in a single process; a true
// process-global registry would leak allocator state across unrelated
// tests (see DESIGN.md).
type Heap struct {
	allocators map[CellKind]*allocator
	roots      []Value
	stack      *[]Value // the interpreter's live register stack, a GC root
	config     *Config

	allocCount      int
	collectionCount int
}

// NewHeap creates an empty Heap. A nil config falls back to NewConfig's
// defaults.
func NewHeap(config *Config) *Heap {
	if config == nil {
		config = NewConfig()
	}
	return &Heap{allocators: make(map[CellKind]*allocator), config: config}
}

func (h *Heap) register(c Cell, kind CellKind) {
	a, ok := h.allocators[kind]
	if !ok {
		a = newAllocator(kind)
		h.allocators[kind] = a
	}
	a.alloc(c)
	h.allocCount++
	if !h.config.GetBool("runtime.no_gc") && h.allocCount%blockCellCount == 0 {
		h.Collect()
	}
}

// AttachValueStack registers the interpreter's live register stack as a GC
// root, the second of spec §4.1's two fully portable roots.
func (h *Heap) AttachValueStack(stack *[]Value) { h.stack = stack }

// AddRoot registers an explicit root (e.g. the VM's global environment),
// the first of spec §4.1's two fully portable roots.
func (h *Heap) AddRoot(v Value) { h.roots = append(h.roots, v) }

// ScanConservatively is the documented seam for a future platform-specific
// native-stack scan (see DESIGN.md). Its body is empty: the words passed to
// it are ignored and nothing is marked. Go exposes no safe, portable
// equivalent to pthread_get_stackaddr_np for scanning a goroutine's own
// native stack.
func (h *Heap) ScanConservatively(words []uintptr) {}

// Collect runs one mark-sweep cycle over every size class.
func (h *Heap) Collect() int {
	h.collectionCount++
	for _, v := range h.roots {
		markValue(v)
	}
	if h.stack != nil {
		for _, v := range *h.stack {
			markValue(v)
		}
	}
	collected := 0
	for _, a := range h.allocators {
		collected += a.sweep()
	}
	return collected
}

func markValue(v Value) {
	switch {
	case v.IsCell():
		markCell(v.AsCell())
	case v.IsAbstractValue():
		markCell(v.AsAbstractValue())
	}
}

func markCell(c Cell) {
	if c == nil || c.marked() {
		return
	}
	c.setMarked(true)
	c.Visit(markValue)
}

// HeapStats reports simple GC counters so tests can assert a collection
// actually ran and actually reclaimed something (spec §8).
type HeapStats struct {
	Allocations int
	Collections int
	Live        int
}

// Stats returns the current counters.
func (h *Heap) Stats() HeapStats {
	live := 0
	for _, a := range h.allocators {
		live += len(a.live)
	}
	return HeapStats{Allocations: h.allocCount, Collections: h.collectionCount, Live: live}
}
