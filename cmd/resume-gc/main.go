// Command resume-gc delete uploaded resumes that no candidate profile point to.
// Uploads are not saved until candidate save the profile, so abandoned uploads stay in bucket.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"GradLinkUp-backend/internal/config"
	"GradLinkUp-backend/internal/database"
	"GradLinkUp-backend/internal/logging"
	"GradLinkUp-backend/internal/model"
	"GradLinkUp-backend/internal/storage"
)

func main() {
	dryRun := flag.Bool("dry-run", true, "only print objects that would be deleted")
	minAge := flag.Duration("min-age", 24*time.Hour, "keep objects younger than this")
	flag.Parse()

	log := logging.Log

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if err := logging.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.WithError(err).Fatal("invalid logging configuration")
	}

	ctx := context.Background()

	db, err := database.NewDBInstance(cfg.DB)
	if err != nil {
		log.WithError(err).Fatal("database failed to initialize")
	}
	defer db.Close()

	gcs, err := storage.NewCloudStorageClient(ctx, cfg.Storage.Bucket)
	if err != nil {
		log.WithError(err).Fatal("cloud storage failed to initialize")
	}
	defer gcs.Close()

	var urls []string
	if err := db.Model(&model.Profile{}).
		Where("resume_url IS NOT NULL").
		Pluck("resume_url", &urls).Error; err != nil {
		log.WithError(err).Fatal("failed to load resume urls")
	}

	orphans, err := storage.OrphanObjects(ctx, gcs, storage.KindResume, urls, time.Now().Add(-*minAge))
	if err != nil {
		log.WithError(err).Fatal("failed to find orphan resumes")
	}

	for _, obj := range orphans {
		if *dryRun {
			fmt.Printf("would delete %s (%d bytes, created %s)\n", obj.Name, obj.Size, obj.Created.Format(time.RFC3339))
			continue
		}
		if err := gcs.DeleteObject(ctx, obj.Name); err != nil {
			log.WithError(err).WithField("object", obj.Name).Error("failed to delete object")
			continue
		}
		log.WithField("object", obj.Name).Info("deleted orphan resume")
	}
	fmt.Printf("%d orphan resume(s) found\n", len(orphans))
}
