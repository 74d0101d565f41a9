package store

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/alexsisay/alemu-portfolio-backend/internal"
)

var ErrPostNotFound = errors.New("blog post not found")

const wordsPerMinute = 200

// MemoryStore holds the portfolio content. It is built once and never
// mutated afterwards, so it is safe for concurrent readers without locking.
// Every accessor returns a copy.
type MemoryStore struct {
	profile   internal.Profile
	posts     []internal.BlogPost
	byID      map[string]int
	dashboard DashboardSettings
}

// DashboardSettings is the static, non-derived part of the dashboard.
type DashboardSettings struct {
	YearsOfExperience int             `yaml:"yearsOfExperience"`
	ResearchAreas     []string        `yaml:"researchAreas"`
	Trends            internal.Trends `yaml:"trends"`
	ResearchProgress  map[string]int  `yaml:"researchProgress"`
}

func NewMemoryStore(c Content) (*MemoryStore, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	posts := make([]internal.BlogPost, len(c.Posts))
	copy(posts, c.Posts)
	for i := range posts {
		if posts[i].ReadTime <= 0 {
			posts[i].ReadTime = ReadingTime(posts[i].Content)
		}
	}
	// newest first; dates are ISO-8601 so lexical order works
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Date > posts[j].Date })

	byID := make(map[string]int, len(posts))
	for i, p := range posts {
		byID[p.ID] = i
	}

	return &MemoryStore{
		profile:   c.Profile,
		posts:     posts,
		byID:      byID,
		dashboard: c.Dashboard,
	}, nil
}

func (s *MemoryStore) Profile() internal.Profile {
	p := s.profile
	p.Education = append([]internal.Education(nil), s.profile.Education...)
	p.Experience = append([]internal.Experience(nil), s.profile.Experience...)
	p.Skills = append([]string(nil), s.profile.Skills...)
	p.Publications = append([]internal.Publication(nil), s.profile.Publications...)
	p.ResearchInterests = append([]string(nil), s.profile.ResearchInterests...)
	p.Projects = make([]internal.Project, len(s.profile.Projects))
	for i, pr := range s.profile.Projects {
		pr.Technologies = append([]string(nil), pr.Technologies...)
		p.Projects[i] = pr
	}
	return p
}

// Posts lists every post without its body, newest first.
func (s *MemoryStore) Posts() []internal.BlogPost {
	out := make([]internal.BlogPost, len(s.posts))
	for i, p := range s.posts {
		p.Content = ""
		p.Tags = append([]string(nil), p.Tags...)
		out[i] = p
	}
	return out
}

func (s *MemoryStore) Post(id string) (internal.BlogPost, error) {
	idx, ok := s.byID[id]
	if !ok {
		return internal.BlogPost{}, ErrPostNotFound
	}
	p := s.posts[idx]
	p.Tags = append([]string(nil), p.Tags...)
	return p, nil
}

// Dashboard combines counts derived from the content with the configured
// static figures.
func (s *MemoryStore) Dashboard() internal.Dashboard {
	progress := make(map[string]int, len(s.dashboard.ResearchProgress))
	for k, v := range s.dashboard.ResearchProgress {
		progress[k] = v
	}
	return internal.Dashboard{
		TotalPublications: len(s.profile.Publications),
		TotalProjects:     len(s.profile.Projects),
		YearsOfExperience: s.dashboard.YearsOfExperience,
		BlogPosts:         len(s.posts),
		Skills:            len(s.profile.Skills),
		ResearchAreas:     append([]string(nil), s.dashboard.ResearchAreas...),
		Trends:            s.dashboard.Trends,
		ResearchProgress:  progress,
	}
}

// ReadingTime estimates minutes to read text at 200 words per minute,
// never less than one.
func ReadingTime(text string) int {
	words := len(strings.Fields(text))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
