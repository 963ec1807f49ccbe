// Package library implements the psychiatry toolkit content library: the static
// section hierarchy, the card filter/ranking engine, and the navigation state model.
package library

import "sort"

// Section is one node in the two-level content taxonomy.
type Section struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Order int    `json:"order" yaml:"order"`
}

// SectionGroup is a parent section with its leaf children. Cards belong to leaf
// sections only; parent membership is derived through the index.
type SectionGroup struct {
	Section  `yaml:",inline"`
	Children []Section `json:"children" yaml:"children"`
}

// SectionAll is the sentinel section id meaning "no section restriction".
const SectionAll = "all"

// Index is the compiled form of the section tree: a flat ordered list plus id lookups
// in both directions. Built once per library session.
type Index struct {
	Flat             []Section
	ByID             map[string]Section
	ParentToChildren map[string][]string
	LeafToParent     map[string]string
}

// DefaultSections is the static psychiatry toolkit taxonomy.
var DefaultSections = []SectionGroup{
	{
		Section: Section{ID: "emergencies", Title: "Psychiatric Emergencies", Order: 1},
		Children: []Section{
			{ID: "agitation", Title: "Agitation", Order: 1},
			{ID: "catatonia", Title: "Catatonia", Order: 2},
			{ID: "overdose", Title: "Overdose & Toxicity", Order: 3},
		},
	},
	{
		Section: Section{ID: "assessments", Title: "Assessments", Order: 2},
		Children: []Section{
			{ID: "suicide-risk", Title: "Suicide Risk", Order: 1},
			{ID: "capacity", Title: "Capacity", Order: 2},
			{ID: "delirium", Title: "Delirium", Order: 3},
		},
	},
	{
		Section: Section{ID: "medications", Title: "Medications", Order: 3},
		Children: []Section{
			{ID: "antipsychotics", Title: "Antipsychotics", Order: 1},
			{ID: "benzodiazepines", Title: "Benzodiazepines", Order: 2},
			{ID: "mood-stabilizers", Title: "Mood Stabilizers", Order: 3},
			{ID: "antidepressants", Title: "Antidepressants", Order: 4},
		},
	},
	{
		Section: Section{ID: "legal", Title: "Legal & Consent", Order: 4},
		Children: []Section{
			{ID: "holds", Title: "Involuntary Holds", Order: 1},
			{ID: "consent", Title: "Informed Consent", Order: 2},
		},
	},
}

// BuildIndex compiles a section tree into its flat list and lookup maps. Parents are
// ordered by Order, each followed by its children ordered by Order.
func BuildIndex(groups []SectionGroup) *Index {
	sorted := make([]SectionGroup, len(groups))
	copy(sorted, groups)
	sortSectionsByOrder(sorted)

	ix := &Index{
		ByID:             make(map[string]Section),
		ParentToChildren: make(map[string][]string),
		LeafToParent:     make(map[string]string),
	}
	for _, group := range sorted {
		ix.Flat = append(ix.Flat, group.Section)
		ix.ByID[group.ID] = group.Section

		children := make([]Section, len(group.Children))
		copy(children, group.Children)
		sortLeavesByOrder(children)

		ids := make([]string, 0, len(children))
		for _, child := range children {
			ix.Flat = append(ix.Flat, child)
			ix.ByID[child.ID] = child
			ix.LeafToParent[child.ID] = group.ID
			ids = append(ids, child.ID)
		}
		ix.ParentToChildren[group.ID] = ids
	}
	return ix
}

// ResolveSectionFilter resolves a selected section id into the set of leaf section ids
// to match cards against. An empty id or SectionAll means no restriction (nil); a
// parent id resolves to its children in declared order; any other id is treated as
// already a leaf. Both the filter and the badge counts go through it.
func (ix *Index) ResolveSectionFilter(id string) []string {
	if id == "" || id == SectionAll {
		return nil
	}
	if children, ok := ix.ParentToChildren[id]; ok {
		out := make([]string, len(children))
		copy(out, children)
		return out
	}
	return []string{id}
}

func sortSectionsByOrder(groups []SectionGroup) {
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Order < groups[j].Order })
}

func sortLeavesByOrder(leaves []Section) {
	sort.SliceStable(leaves, func(i, j int) bool { return leaves[i].Order < leaves[j].Order })
}
