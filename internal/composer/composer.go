// Package composer holds the editable request form and the preset
// endpoints that fill it in.
package composer

import (
	"encoding/json"
	"strings"
)

// Methods lists the HTTP methods offered by the method selector, in order.
var Methods = []string{"GET", "POST", "PUT", "DELETE"}

// Form is the state of the request composer: what the user has typed into
// the base URL, method, path and body fields.
type Form struct {
	BaseURL string
	Method  string
	Path    string
	Body    string
}

// URL returns the request address exactly as it will be sent.
func (f Form) URL() string {
	return f.BaseURL + f.Path
}

// HasBody reports whether a send of this form carries a body.
// Only POST and PUT send one, and only when the field is not blank.
func (f Form) HasBody() bool {
	return MethodAllowsBody(f.Method) && strings.TrimSpace(f.Body) != ""
}

// Preset is a predefined method and path offered as a quick-fill shortcut.
type Preset struct {
	Name   string `yaml:"name" json:"name"`
	Method string `yaml:"method" json:"method"`
	Path   string `yaml:"path" json:"path"`
}

// Label is the short text shown on a preset button.
func (p Preset) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Method + " " + p.Path
}

// DefaultPresets returns the built-in endpoint shortcuts.
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "Health", Method: "GET", Path: "/health"},
		{Name: "Get profile", Method: "GET", Path: "/profile"},
		{Name: "Create profile", Method: "POST", Path: "/profile"},
		{Name: "Update profile", Method: "PUT", Path: "/profile/1"},
		{Name: "List experience", Method: "GET", Path: "/experience"},
		{Name: "Add experience", Method: "POST", Path: "/experience"},
		{Name: "List projects", Method: "GET", Path: "/projects"},
		{Name: "Add project", Method: "POST", Path: "/projects"},
		{Name: "Update project", Method: "PUT", Path: "/projects/1"},
		{Name: "Delete project", Method: "DELETE", Path: "/projects/1"},
		{Name: "Search", Method: "GET", Path: "/search?q=python"},
	}
}

// Apply sets the form's method and path to the preset's and pre-fills a
// sample body. For POST and PUT the sample is chosen by path substring and
// the body is left alone when nothing matches; every other method clears it.
func (f *Form) Apply(p Preset) {
	f.Method = p.Method
	f.Path = p.Path

	if !MethodAllowsBody(p.Method) {
		f.Body = ""
		return
	}
	if body, ok := SampleBody(p.Path); ok {
		f.Body = body
	}
}

// MethodAllowsBody reports whether requests with method carry a body.
func MethodAllowsBody(method string) bool {
	return method == "POST" || method == "PUT"
}

// NextMethod returns the method after current in Methods, wrapping around.
// Unknown methods restart the cycle.
func NextMethod(current string) string {
	for i, m := range Methods {
		if m == current {
			return Methods[(i+1)%len(Methods)]
		}
	}
	return Methods[0]
}

type profileSample struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Title string `json:"title"`
	Bio   string `json:"bio"`
}

type experienceSample struct {
	ProfileID   int    `json:"profile_id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	IsCurrent   int    `json:"is_current"`
}

type projectSample struct {
	ProfileID   int    `json:"profile_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TechStack   string `json:"tech_stack"`
	GithubURL   string `json:"github_url"`
}

// samples are matched in order; the first substring found in the path wins.
var samples = []struct {
	substr string
	body   interface{}
}{
	{"/profile", profileSample{
		Name:  "John Doe",
		Email: "john@example.com",
		Title: "Software Developer",
		Bio:   "Passionate about building great software",
	}},
	{"/experience", experienceSample{
		ProfileID:   1,
		Company:     "Tech Corp",
		Position:    "Senior Developer",
		Description: "Building awesome products",
		StartDate:   "2022-01",
		IsCurrent:   1,
	}},
	{"/projects", projectSample{
		ProfileID:   1,
		Name:        "My Project",
		Description: "A cool project",
		TechStack:   "Python, FastAPI, React",
		GithubURL:   "https://github.com/user/project",
	}},
}

// SampleBody returns the two-space indented sample payload for path.
func SampleBody(path string) (string, bool) {
	for _, s := range samples {
		if !strings.Contains(path, s.substr) {
			continue
		}
		data, err := json.MarshalIndent(s.body, "", "  ")
		if err != nil {
			return "", false
		}
		return string(data), true
	}
	return "", false
}
