package serviceImp

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"
	"unicode"

	"agroscore/entities"
	"agroscore/pkg/kb/embedder"
	"agroscore/pkg/kb/repository"
)

const chunkRunes = 1000

type Svc struct {
	r   repository.KBRepository
	emb *embedder.Client
}

// New accepts a nil embedder; search then ranks by keyword overlap.
func New(r repository.KBRepository, e *embedder.Client) *Svc { return &Svc{r: r, emb: e} }

// chunkText splits on line breaks once a chunk has reached maxRunes.
func chunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = chunkRunes
	}
	var parts []string
	var cur strings.Builder
	count := 0
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if count >= maxRunes && r == '\n' {
			if s := strings.TrimSpace(cur.String()); s != "" {
				parts = append(parts, s)
			}
			cur.Reset()
			count = 0
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		parts = append(parts, s)
	}
	return parts
}

func (s *Svc) UpsertDocument(ctx context.Context, title, tags, text, sourceURL string) (*entities.KBDocument, int, error) {
	d := &entities.KBDocument{Title: title, Tags: tags, SourceURL: sourceURL}
	if err := s.r.CreateDoc(d); err != nil {
		return nil, 0, err
	}
	chs := chunkText(text, chunkRunes)
	if len(chs) == 0 {
		return d, 0, nil
	}

	var embs [][]float32
	if s.emb != nil {
		var err error
		if embs, err = s.emb.Embed(ctx, chs); err != nil {
			log.Printf("[kb] embed doc %d: %v (stored without vectors)", d.DocID, err)
			embs = nil
		}
	}

	rows := make([]entities.KBChunk, len(chs))
	for i := range chs {
		rows[i] = entities.KBChunk{DocID: d.DocID, Ord: i, Text: chs[i]}
		if embs != nil {
			rows[i].Embedding = embedder.FloatsToBytes(embs[i])
		}
	}
	if err := s.r.BulkInsertChunks(rows); err != nil {
		return nil, 0, err
	}
	return d, len(rows), nil
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func terms(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// overlap is the number of distinct query terms found in text.
func overlap(qterms []string, text string) float64 {
	have := map[string]bool{}
	for _, t := range terms(text) {
		have[t] = true
	}
	n := 0.0
	for _, t := range qterms {
		if have[t] {
			n++
		}
	}
	return n
}

// Search returns at most k chunks, best first. Chunks with no match are
// dropped; ties keep storage order.
func (s *Svc) Search(ctx context.Context, query string, k int) ([]entities.KBChunk, error) {
	q := strings.TrimSpace(query)
	if q == "" || k <= 0 {
		return nil, nil
	}

	var qvec []float32
	if s.emb != nil {
		if vec, err := s.emb.Embed(ctx, []string{q}); err == nil && len(vec) > 0 {
			qvec = vec[0]
		}
	}

	chunks, err := s.r.AllChunks()
	if err != nil {
		return nil, err
	}

	type scored struct {
		ch entities.KBChunk
		sc float64
	}
	var list []scored
	qterms := dedupe(terms(q))
	for _, ch := range chunks {
		var sc float64
		if v := embedder.BytesToFloats(ch.Embedding); len(qvec) > 0 && len(v) == len(qvec) {
			sc = cosine(qvec, v)
		} else {
			sc = overlap(qterms, ch.Text)
		}
		if sc > 0 {
			list = append(list, scored{ch, sc})
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].sc > list[j].sc })

	if k > len(list) {
		k = len(list)
	}
	out := make([]entities.KBChunk, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, list[i].ch)
	}
	return out, nil
}

func dedupe(in []string) []string {
	seen := map[string]bool{}
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func (s *Svc) DocsMeta(ids []uint) (map[uint]entities.KBDocument, error) {
	return s.r.DocsByIDs(ids)
}
