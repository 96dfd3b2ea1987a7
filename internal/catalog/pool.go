package catalog

import "strings"

// Pool hands out images per category in a shuffled round-robin so that a
// gallery with many slots of the same category does not repeat one random
// pick. A Pool serves one composition pass and is not safe for concurrent
// use.
type Pool struct {
	records []Record
	buckets map[string][]Record
	cursors map[string]int
	rnd     Rand
}

// NewPool partitions records by folder and shuffles every bucket once.
func NewPool(records []Record, rnd Rand) *Pool {
	rnd = orDefault(rnd)

	grouped := make(map[string][]Record)
	for _, r := range records {
		if !r.usable() {
			continue
		}
		key := strings.ToLower(r.Category)
		grouped[key] = append(grouped[key], r)
	}

	buckets := make(map[string][]Record, len(grouped))
	for key, bucket := range grouped {
		buckets[key] = Shuffle(bucket, rnd)
	}

	return &Pool{
		records: records,
		buckets: buckets,
		cursors: make(map[string]int),
		rnd:     rnd,
	}
}

// Next returns the next image of category's bucket, wrapping around once
// the bucket is exhausted.
func (p *Pool) Next(category string) (string, bool) {
	key := strings.ToLower(FolderFor(category))

	bucket := p.buckets[key]
	if len(bucket) == 0 {
		return "", false
	}

	cursor := p.cursors[key]
	p.cursors[key] = cursor + 1
	return bucket[cursor%len(bucket)].PublicURL, true
}

// Image returns the next pooled image of category; when the bucket is empty
// it falls back to a single Resolve lookup and finally to fallback.
func (p *Pool) Image(category, fallback string) string {
	if url, ok := p.Next(category); ok {
		return url
	}
	if url, ok := Resolve(p.records, category, "", p.rnd); ok {
		return url
	}
	return fallback
}
