// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"folio/internal/models"
	"folio/internal/util"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var seedTechnologies = []string{
	"Go", "TypeScript", "React", "Vue", "PostgreSQL", "Redis",
	"Docker", "Kubernetes", "Tailwind", "GraphQL", "gRPC", "Svelte",
}

var seedPaths = []string{
	"/", "/projects", "/about", "/contact",
	"/projects/portfolio-site", "/projects/chat-app", "/blog",
}

// BuildProject constructs a project without persisting it.
func (f *Factory) BuildProject(category models.ProjectCategory, overrides ...func(*models.Project)) *models.Project {
	title := gofakeit.ProductName() + " " + gofakeit.HackerNoun()
	techs := f.pick(seedTechnologies, 2+f.r.Intn(4))

	project := &models.Project{
		Title:           title,
		Slug:            util.Slugify(fmt.Sprintf("%s-%s", title, gofakeit.LetterN(4))),
		Description:     gofakeit.Sentence(12),
		FullDescription: gofakeit.Paragraph(2, 4, 8, "\n\n"),
		Technologies:    techs,
		Category:        category,
		Images: models.ProjectImages{
			Thumbnail: fmt.Sprintf("https://picsum.photos/seed/%s/600/400", gofakeit.UUID()),
			Gallery: []string{
				fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", gofakeit.UUID()),
				fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", gofakeit.UUID()),
			},
		},
		LiveURL:   gofakeit.URL(),
		GithubURL: fmt.Sprintf("https://github.com/%s/%s", gofakeit.Username(), util.Slugify(title)),
		Featured:  f.r.Intn(4) == 0,
		ViewCount: int64(f.r.Intn(500)),
	}
	if category == models.CategoryAIGenerated || category == models.CategoryHybrid {
		project.AIPrompts = []string{gofakeit.Sentence(10), gofakeit.Sentence(8)}
	}

	// realistic created_at spread
	project.CreatedAt = time.Now().Add(-time.Duration(f.r.Intn(180)) * 24 * time.Hour)

	for _, override := range overrides {
		override(project)
	}
	return project
}

// CreateProjects persists n projects spread across all categories.
func (f *Factory) CreateProjects(n int) ([]models.Project, error) {
	if n <= 0 {
		n = 9
	}
	categories := []models.ProjectCategory{
		models.CategoryAIGenerated, models.CategoryManual, models.CategoryHybrid,
	}
	projects := make([]models.Project, 0, n)
	for i := 0; i < n; i++ {
		p := f.BuildProject(categories[i%len(categories)])
		if err := f.db.Create(p).Error; err != nil {
			return projects, err
		}
		projects = append(projects, *p)
	}
	return projects, nil
}

// CreateContentSections writes a plausible document for every known section.
func (f *Factory) CreateContentSections(editorID uint) error {
	docs := map[string]any{
		models.SectionHero: map[string]any{
			"name":     gofakeit.Name(),
			"title":    gofakeit.JobTitle(),
			"subtitle": gofakeit.Sentence(8),
			"tagline":  gofakeit.Phrase(),
		},
		models.SectionAbout: map[string]any{
			"headline": gofakeit.Sentence(6),
			"bio":      gofakeit.Paragraph(2, 3, 10, "\n\n"),
		},
		models.SectionSkills: map[string]any{
			"skills": []map[string]any{
				{"name": "Go", "level": 90},
				{"name": "TypeScript", "level": 85},
				{"name": "PostgreSQL", "level": 80},
			},
		},
		models.SectionContact: map[string]any{
			"email":    gofakeit.Email(),
			"location": gofakeit.City(),
			"socials": map[string]string{
				"github":   "https://github.com/" + gofakeit.Username(),
				"linkedin": "https://linkedin.com/in/" + gofakeit.Username(),
			},
		},
		models.SectionSettings: map[string]any{
			"theme":          "dark",
			"showViewCounts": true,
		},
	}

	for section, doc := range docs {
		data, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		content := &models.Content{
			Section:   section,
			Data:      data,
			UpdatedBy: &editorID,
			UpdatedAt: time.Now().UTC(),
		}
		if err := f.db.Create(content).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateAnalytics persists n visitor sessions spread over the trailing days,
// each with one to five page views. Returns session and view counts.
func (f *Factory) CreateAnalytics(n, days int) (int, int, error) {
	if n <= 0 {
		n = 120
	}
	if days <= 0 {
		days = 30
	}

	devices := []models.DeviceType{
		models.DeviceDesktop, models.DeviceDesktop, models.DeviceMobile, models.DeviceTablet,
	}

	totalViews := 0
	for i := 0; i < n; i++ {
		first := time.Now().UTC().
			Add(-time.Duration(f.r.Intn(days)) * 24 * time.Hour).
			Add(-time.Duration(f.r.Intn(86400)) * time.Second)

		session := &models.AnalyticsSession{
			SessionID:  uuid.NewString(),
			IPAddress:  fmt.Sprintf("%d.%d.0.0", 10+f.r.Intn(200), f.r.Intn(256)),
			UserAgent:  gofakeit.UserAgent(),
			Referrer:   gofakeit.URL(),
			Device:     devices[f.r.Intn(len(devices))],
			FirstVisit: first,
			LastVisit:  first,
		}

		numViews := 1 + f.r.Intn(5)
		at := first
		for v := 0; v < numViews; v++ {
			duration := 5 + f.r.Intn(300)
			session.Pages = append(session.Pages, models.PageView{
				Path:     seedPaths[f.r.Intn(len(seedPaths))],
				Duration: &duration,
				ViewedAt: at,
			})
			at = at.Add(time.Duration(duration) * time.Second)
		}
		session.LastVisit = at

		if err := f.db.Create(session).Error; err != nil {
			return i, totalViews, err
		}
		totalViews += numViews
	}
	return n, totalViews, nil
}

func (f *Factory) pick(from []string, n int) []string {
	shuffled := make([]string, len(from))
	copy(shuffled, from)
	f.r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
