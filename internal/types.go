package internal

import "time"

// --- Profile / CV ---

type Personal struct {
	Name     string `json:"name" yaml:"name"`
	Title    string `json:"title" yaml:"title"`
	Email    string `json:"email" yaml:"email"`
	Location string `json:"location" yaml:"location"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
	GitHub   string `json:"github" yaml:"github"`
	Summary  string `json:"summary" yaml:"summary"`
}

type Education struct {
	Degree      string `json:"degree" yaml:"degree"`
	Institution string `json:"institution" yaml:"institution"`
	Year        string `json:"year" yaml:"year"`
	Focus       string `json:"focus" yaml:"focus"`
}

type Experience struct {
	Title       string `json:"title" yaml:"title"`
	Company     string `json:"company" yaml:"company"`
	Period      string `json:"period" yaml:"period"`
	Description string `json:"description" yaml:"description"`
}

type Publication struct {
	Title   string `json:"title" yaml:"title"`
	Journal string `json:"journal" yaml:"journal"`
	Year    string `json:"year" yaml:"year"`
	DOI     string `json:"doi,omitempty" yaml:"doi"`
}

type Project struct {
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	Technologies []string `json:"technologies" yaml:"technologies"`
}

type Profile struct {
	Personal          Personal      `json:"personal" yaml:"personal"`
	Education         []Education   `json:"education" yaml:"education"`
	Experience        []Experience  `json:"experience" yaml:"experience"`
	Skills            []string      `json:"skills" yaml:"skills"`
	Publications      []Publication `json:"publications" yaml:"publications"`
	Projects          []Project     `json:"projects" yaml:"projects"`
	ResearchInterests []string      `json:"researchInterests" yaml:"researchInterests"`
}

// --- Blog ---

type BlogPost struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Excerpt  string   `json:"excerpt" yaml:"excerpt"`
	Content  string   `json:"content,omitempty" yaml:"content"`
	Author   string   `json:"author" yaml:"author"`
	Date     string   `json:"date" yaml:"date"`
	Tags     []string `json:"tags" yaml:"tags"`
	ReadTime int      `json:"readTime" yaml:"readTime"`
}

// --- Dashboard ---

type Trends struct {
	Publications string `json:"publications" yaml:"publications"`
	Projects     string `json:"projects" yaml:"projects"`
}

type Dashboard struct {
	TotalPublications int            `json:"totalPublications"`
	TotalProjects     int            `json:"totalProjects"`
	YearsOfExperience int            `json:"yearsOfExperience"`
	BlogPosts         int            `json:"blogPosts"`
	Skills            int            `json:"skills"`
	ResearchAreas     []string       `json:"researchAreas"`
	Trends            Trends         `json:"trends"`
	ResearchProgress  map[string]int `json:"researchProgress"`
}

// --- AI chat ---

type ChatRequest struct {
	Question string `json:"question"`
}

type ChatResponse struct {
	Response  string    `json:"response"`
	Provider  string    `json:"provider"`
	Fallback  bool      `json:"fallback"`
	Timestamp time.Time `json:"timestamp"`
}

type AIStatusResponse struct {
	Provider  string `json:"provider"`
	Model     string `json:"model,omitempty"`
	Available bool   `json:"available"`
	Fallback  bool   `json:"fallback"`
}
