package project

import "strings"

// Project is one portfolio entry. URL is optional and empty when absent.
type Project struct {
	Name string `json:"name"`
	Tech string `json:"tech"`
	Desc string `json:"desc"`
	URL  string `json:"url"`
}

// New trims every field and reports false when name, tech or description
// end up empty. The URL is never required.
func New(name, tech, desc, url string) (Project, bool) {
	p := Project{
		Name: strings.TrimSpace(name),
		Tech: strings.TrimSpace(tech),
		Desc: strings.TrimSpace(desc),
		URL:  strings.TrimSpace(url),
	}
	if p.Name == "" || p.Tech == "" || p.Desc == "" {
		return Project{}, false
	}
	return p, true
}

func (p Project) HasURL() bool {
	return p.URL != ""
}
