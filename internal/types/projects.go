package types

// ProjectBucket accumulates the four parallel arrays for one project
// category during listing extraction. Index i across all four slices
// describes the same project; Append is the only intended mutation.
type ProjectBucket struct {
	Projects []string
	Codes    []string
	Statuses []string
	Years    []string
}

// Append records one project row, keeping the four slices in lockstep.
func (b *ProjectBucket) Append(title, code, status, year string) {
	b.Projects = append(b.Projects, title)
	b.Codes = append(b.Codes, code)
	b.Statuses = append(b.Statuses, status)
	b.Years = append(b.Years, year)
}

// Len returns the number of rows in the bucket.
func (b *ProjectBucket) Len() int {
	return len(b.Projects)
}

// balanced reports whether the four parallel slices have equal length.
func (b *ProjectBucket) balanced() bool {
	n := len(b.Projects)
	return len(b.Codes) == n && len(b.Statuses) == n && len(b.Years) == n
}

// ProjectSet holds the per-category buckets in their fixed aggregation
// order: lending, non-lending, IFC.
type ProjectSet struct {
	Lending    ProjectBucket
	NonLending ProjectBucket
	IFC        ProjectBucket
}

// concatBuckets folds buckets into a single aggregate bucket, preserving
// bucket order and row order within each bucket.
func concatBuckets(buckets ...ProjectBucket) ProjectBucket {
	var all ProjectBucket
	for _, b := range buckets {
		all.Projects = append(all.Projects, b.Projects...)
		all.Codes = append(all.Codes, b.Codes...)
		all.Statuses = append(all.Statuses, b.Statuses...)
		all.Years = append(all.Years, b.Years...)
	}
	return all
}
