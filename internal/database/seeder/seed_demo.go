package seeder

import (
	"context"
	"fmt"

	"talentbridge/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoEmployerEmail    = "hiring@northwind.example"
	DemoEmployerPassword = "northwind-demo"
)

type demoJob struct {
	Title          string
	Location       string
	EmploymentType string
	Description    string
	Skills         []string
}

var demoJobs = []demoJob{
	{
		Title:          "Backend Engineering Intern (Go)",
		Location:       "Jakarta, ID",
		EmploymentType: "internship",
		Description:    "Work on Go services, REST APIs and PostgreSQL-backed systems with a mentor.",
		Skills:         []string{"go", "postgresql", "rest api", "git"},
	},
	{
		Title:          "Junior Frontend Developer",
		Location:       "Remote",
		EmploymentType: "full_time",
		Description:    "Build hiring dashboards in React and TypeScript.",
		Skills:         []string{"react", "typescript", "css", "figma"},
	},
	{
		Title:          "Data Analyst (Part-time)",
		Location:       "Bandung, ID",
		EmploymentType: "part_time",
		Description:    "Own weekly recruiting funnel reports.",
		Skills:         []string{"sql", "python", "excel", "tableau"},
	},
}

// DemoSeeder creates one employer with a handful of open jobs. Re-running it
// leaves existing demo rows alone.
type DemoSeeder struct{}

func (DemoSeeder) Name() string { return "demo" }

func (DemoSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "full_name", "role"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "jobs",
		"id",
		"employer_id",
		"title",
		"company_name",
		"location",
		"employment_type",
		"description",
		"required_skills",
		"status",
	); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoEmployerPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO users (id, email, password_hash, full_name, role)
			 VALUES ($1, $2, $3, 'Northwind Talent Team', 'employer')
			 ON CONFLICT (email) DO NOTHING`,
			uuid.New(), DemoEmployerEmail, string(hash),
		); err != nil {
			return err
		}

		var employerID uuid.UUID
		if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, DemoEmployerEmail).Scan(&employerID); err != nil {
			return fmt.Errorf("find demo employer: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO profiles (user_id, headline, company_name)
			 VALUES ($1, 'Hiring early-career engineers', 'Northwind')
			 ON CONFLICT (user_id) DO NOTHING`,
			employerID,
		); err != nil {
			return err
		}

		for _, j := range demoJobs {
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM jobs WHERE employer_id = $1 AND title = $2)`,
				employerID, j.Title,
			).Scan(&exists); err != nil {
				return err
			}
			if exists {
				continue
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO jobs (id, employer_id, title, company_name, location, employment_type, description, required_skills, status)
				 VALUES ($1, $2, $3, 'Northwind', $4, $5, $6, $7, 'open')`,
				uuid.New(), employerID, j.Title, j.Location, j.EmploymentType, j.Description, j.Skills,
			); err != nil {
				return fmt.Errorf("insert demo job %q: %w", j.Title, err)
			}
		}
		return nil
	})
}
