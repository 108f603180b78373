package jobs

import (
	"context"
	"log"
	"time"

	"tianguis/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages background jobs. Currently the only job keeps the
// geography reference caches warm so the location pickers rarely hit the
// database.
type JobScheduler struct {
	scheduler        gocron.Scheduler
	geographyService services.GeographyService
}

func NewJobScheduler(geographyService services.GeographyService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:        scheduler,
		geographyService: geographyService,
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

// Start begins job execution and warms the caches once immediately.
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	go js.warmGeographyCache()
}

// Stop shuts the scheduler down, waiting for running jobs to finish.
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.warmGeographyCache),
		gocron.WithName("geography-cache-warm"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

// warmGeographyCache repopulates the estados list and the municipios of each
// estado before their TTLs lapse.
func (js *JobScheduler) warmGeographyCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	estados, err := js.geographyService.ListEstados(ctx)
	if err != nil {
		log.Printf("geography cache warm failed listing estados: %v", err)
		return
	}

	for _, estado := range estados {
		if _, err := js.geographyService.ListMunicipiosByEstado(ctx, estado.ID); err != nil {
			log.Printf("geography cache warm failed for estado %s: %v", estado.ID.String(), err)
		}
	}
	log.Printf("geography cache warmed for %d estados", len(estados))
}
