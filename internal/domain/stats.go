package domain

import "sort"

const DefaultTopTechnologies = 8

type TechnologyCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type StatsSummary struct {
	Total           int                 `json:"total"`
	ByType          map[ProjectType]int `json:"byType"`
	ByStatus        map[Status]int      `json:"byStatus"`
	TopTechnologies []TechnologyCount   `json:"topTechnologies"`
}

// Aggregate counts entries per type and status and ranks technology labels
// by occurrence. Every enum member is present in the maps, zero or not.
// Labels are case-sensitive; ties keep first-seen order. topN <= 0 keeps
// the whole ranking.
func Aggregate(entries []Entry, topN int) StatsSummary {
	summary := StatsSummary{
		Total:           len(entries),
		ByType:          make(map[ProjectType]int, len(ProjectTypes)),
		ByStatus:        make(map[Status]int, len(Statuses)),
		TopTechnologies: []TechnologyCount{},
	}
	for _, t := range ProjectTypes {
		summary.ByType[t] = 0
	}
	for _, s := range Statuses {
		summary.ByStatus[s] = 0
	}

	index := make(map[string]int)
	for _, e := range entries {
		summary.ByType[e.ProjectType]++
		summary.ByStatus[e.Status]++
		for _, tech := range e.Technologies {
			if i, ok := index[tech]; ok {
				summary.TopTechnologies[i].Count++
				continue
			}
			index[tech] = len(summary.TopTechnologies)
			summary.TopTechnologies = append(summary.TopTechnologies, TechnologyCount{Name: tech, Count: 1})
		}
	}

	sort.SliceStable(summary.TopTechnologies, func(i, j int) bool {
		return summary.TopTechnologies[i].Count > summary.TopTechnologies[j].Count
	})
	if topN > 0 && len(summary.TopTechnologies) > topN {
		summary.TopTechnologies = summary.TopTechnologies[:topN]
	}
	return summary
}
