package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"microblog/internal/app"
	"microblog/internal/service"
	"microblog/internal/store"
)

type seedUser struct {
	name   string
	apiKey string
}

// Alex and Petr are always present so the api keys "aaa" and "sss" work
// against a freshly seeded database.
var fixedUsers = []seedUser{
	{name: "Alex", apiKey: "aaa"},
	{name: "Petr", apiKey: "sss"},
}

func main() {
	envFile := flag.String("env", "", "Environment file to load (e.g. .env)")
	configFile := flag.String("config", "", "YAML configuration file")
	users := flag.Int("users", 20, "Number of random users to create")
	tweets := flag.Int("tweets", 5, "Maximum number of tweets per user")
	seed := flag.Int64("seed", 0, "Random seed, 0 picks one")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Printf("Warning: failed to load env file %s: %v", *envFile, err)
		}
	}
	gofakeit.Seed(*seed)

	container, err := app.BuildContainer(*configFile)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	err = container.Invoke(func(logger *logrus.Logger, svc *service.Services, s *store.Store) error {
		defer s.Close()
		return run(context.Background(), logger, svc, *users, *tweets)
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func run(ctx context.Context, logger *logrus.Logger, svc *service.Services, userCount, maxTweets int) error {
	accounts := append([]seedUser{}, fixedUsers...)
	for i := 0; i < userCount; i++ {
		accounts = append(accounts, seedUser{name: gofakeit.Name(), apiKey: gofakeit.UUID()})
	}

	var ids []uint
	var keys []string
	for _, a := range accounts {
		user, err := svc.Users.Register(ctx, a.name, gofakeit.Password(true, true, true, false, false, 12), a.apiKey)
		if errors.Is(err, service.ErrBadUser) {
			profile, err := svc.Users.GetByAPIKey(ctx, a.apiKey)
			if err != nil {
				return err
			}
			ids = append(ids, profile.ID)
			keys = append(keys, a.apiKey)
			continue
		}
		if err != nil {
			return err
		}
		ids = append(ids, user.ID)
		keys = append(keys, a.apiKey)
	}
	logger.WithField("users", len(ids)).Info("Users seeded")

	var follows int
	for _, key := range keys {
		for n := gofakeit.Number(0, 5); n > 0; n-- {
			target := ids[gofakeit.Number(0, len(ids)-1)]
			if err := svc.Follows.Add(ctx, key, target); err != nil {
				if service.AsError(err).Kind == service.KindInternal {
					return err
				}
				continue
			}
			follows++
		}
	}
	logger.WithField("follows", follows).Info("Follows seeded")

	var tweetIDs []uint
	for _, key := range keys {
		for n := gofakeit.Number(0, maxTweets); n > 0; n-- {
			id, err := svc.Tweets.Create(ctx, key, gofakeit.Sentence(gofakeit.Number(3, 20)))
			if err != nil {
				return err
			}
			tweetIDs = append(tweetIDs, id)
		}
	}
	logger.WithField("tweets", len(tweetIDs)).Info("Tweets seeded")

	if len(tweetIDs) == 0 {
		return nil
	}
	var likes int
	for _, key := range keys {
		for n := gofakeit.Number(0, 10); n > 0; n-- {
			tweetID := tweetIDs[gofakeit.Number(0, len(tweetIDs)-1)]
			if err := svc.Likes.Add(ctx, key, tweetID); err != nil {
				if service.AsError(err).Kind == service.KindInternal {
					return err
				}
				continue
			}
			likes++
		}
	}
	logger.WithField("likes", likes).Info("Likes seeded")
	return nil
}
