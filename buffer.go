package phrasecluster

// sentinelBase is the first internal terminator code. Document i ends with
// sentinelBase+i, so a terminator only ever matches itself.
const sentinelBase Symbol = 1 << 16

// documentSpan locates one document inside the sequence buffer.
// end is exclusive and covers the document's sentinel.
type documentSpan struct {
	id    uint32
	start int
	end   int
}

// sequenceBuffer is the append-only concatenation of every document added so far.
// Positions never move once written: node labels are intervals into it.
type sequenceBuffer struct {
	symbols []Symbol
	docs    []documentSpan
}

// append copies one terminator-free document and closes it with a fresh sentinel.
// It returns the position of the document's first symbol.
func (b *sequenceBuffer) append(doc []Symbol, id uint32) int {
	start := len(b.symbols)
	b.symbols = append(b.symbols, doc...)
	b.symbols = append(b.symbols, sentinelBase+Symbol(len(b.docs)))
	b.docs = append(b.docs, documentSpan{id: id, start: start, end: len(b.symbols)})
	return start
}

func (b *sequenceBuffer) len() int {
	return len(b.symbols)
}

// document returns the terminator-included symbols of the i-th document.
func (b *sequenceBuffer) document(i int) []Symbol {
	d := b.docs[i]
	return b.symbols[d.start:d.end]
}

// splitDocuments cuts an input sequence at every Terminator. A missing final
// terminator is implied. Empty pieces are dropped.
func splitDocuments(seq []Symbol) [][]Symbol {
	var docs [][]Symbol
	start := 0
	for i, s := range seq {
		if s == Terminator {
			if i > start {
				docs = append(docs, seq[start:i])
			}
			start = i + 1
		}
	}
	if start < len(seq) {
		docs = append(docs, seq[start:])
	}
	return docs
}
