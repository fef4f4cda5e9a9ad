package pattern

// Location identifies a character range in a mini-notation source
// string, as held in Context.Locations. mininotation.Lower does not
// fill Context.Locations: the Haps of a lowered pattern carry an empty
// Context, so no Hap can be traced back to its source range.
type Location struct {
	Line   int
	Column int
	Offset int
	Length int
}

// Context carries provenance metadata for a Hap: the source
// locations it was lowered from, free-form tags used for highlighting,
// and per-event flags (e.g. "this hap came from a degraded slot").
type Context struct {
	Locations []Location
	Tags      []string
}

// Combine merges two contexts, concatenating locations and tags. Used
// by applicative combinators when two Haps' values are combined into
// one (spec §4.2 combine_context).
func (c Context) Combine(o Context) Context {
	if len(c.Locations) == 0 && len(c.Tags) == 0 {
		return o
	}
	if len(o.Locations) == 0 && len(o.Tags) == 0 {
		return c
	}
	locs := make([]Location, 0, len(c.Locations)+len(o.Locations))
	locs = append(locs, c.Locations...)
	locs = append(locs, o.Locations...)
	tags := make([]string, 0, len(c.Tags)+len(o.Tags))
	tags = append(tags, c.Tags...)
	tags = append(tags, o.Tags...)
	return Context{Locations: locs, Tags: tags}
}

// WithTag returns a copy of c with tag appended.
func (c Context) WithTag(tag string) Context {
	tags := make([]string, len(c.Tags), len(c.Tags)+1)
	copy(tags, c.Tags)
	tags = append(tags, tag)
	return Context{Locations: c.Locations, Tags: tags}
}
