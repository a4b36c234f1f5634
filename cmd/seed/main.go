package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"ideahub/internal/config"
	"ideahub/internal/db"
	"ideahub/internal/model"
	"ideahub/internal/repository"
)

const seedPassword = "password123"

type seedUser struct {
	name     string
	email    string
	isAdmin  bool
	verified bool
	ideas    []seedIdea
}

type seedIdea struct {
	title       string
	description string
	notes       []seedNote
}

type seedNote struct {
	title       string
	description string
	noteType    model.NoteType
}

var demo = []seedUser{
	{
		name: "Ada Admin", email: "admin@ideahub.local", isAdmin: true, verified: true,
		ideas: []seedIdea{
			{
				title:       "Community tool-lending library",
				description: "<p>A neighborhood platform for borrowing rarely used tools instead of buying them.</p>",
				notes: []seedNote{
					{"Insurance model research", "<p>Look at how peer-to-peer car sharing handles damage claims.</p>", model.NoteTypeResearch},
					{"Pilot neighborhood shortlist", "<p>Three candidate districts with active community boards.</p>", model.NoteTypeTask},
				},
			},
		},
	},
	{
		name: "Toni Tester", email: "toni@ideahub.local", verified: true,
		ideas: []seedIdea{
			{
				title:       "Recipe scaling assistant",
				description: "<p>Scales ingredient lists to any serving count and converts units on the fly.</p>",
				notes: []seedNote{
					{"User interview takeaways", "<p>Home bakers struggle most with non-linear scaling (leavening, spices).</p>", model.NoteTypeFeedback},
				},
			},
			{
				title:       "Plant-care reminder service",
				description: "<p>Seasonal watering and fertilizing schedules per species, adjusted by local climate.</p>",
			},
		},
	},
	{
		name: "Sam Starter", email: "sam@ideahub.local",
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users := repository.NewUserRepository(gormDB)
	accounts := repository.NewAccountRepository(gormDB)
	ideas := repository.NewIdeaRepository(gormDB)
	notes := repository.NewNoteRepository(gormDB)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}
	passwordHash := string(hash)

	ctx := context.Background()
	created, skipped := 0, 0

	for _, su := range demo {
		if _, err := users.FindByEmail(ctx, su.email); err == nil {
			log.Printf("User %s already exists, skipping", su.email)
			skipped++
			continue
		}

		user := &model.User{
			Name:       su.name,
			Email:      su.email,
			IsAdmin:    su.isAdmin,
			IsVerified: su.verified,
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.email, err)
		}
		if err := accounts.Create(ctx, &model.Account{
			UserID:       user.ID,
			ProviderID:   model.ProviderCredential,
			AccountID:    user.ID.String(),
			PasswordHash: &passwordHash,
		}); err != nil {
			log.Fatalf("Failed to create credential account for %s: %v", su.email, err)
		}
		created++

		for _, si := range su.ideas {
			idea := &model.Idea{
				Title:       si.title,
				Description: si.description,
				CreatedByID: user.ID,
			}
			if err := ideas.Create(ctx, idea); err != nil {
				log.Fatalf("Failed to create idea %q: %v", si.title, err)
			}
			for _, sn := range si.notes {
				if err := notes.Create(ctx, &model.Note{
					IdeaID:      idea.ID,
					Title:       sn.title,
					Description: sn.description,
					Type:        sn.noteType,
				}); err != nil {
					log.Fatalf("Failed to create note %q: %v", sn.title, err)
				}
			}
		}
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", created)
	log.Printf("  - Users skipped (already present): %d", skipped)
	log.Printf("  - Demo password for all seeded users: %s", seedPassword)
}
