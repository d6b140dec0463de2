package mail

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Worker renders and delivers queued mail jobs.
type Worker struct {
	queue    *Queue
	renderer *Renderer
	sender   Sender
}

func NewWorker(queue *Queue, renderer *Renderer, sender Sender) *Worker {
	return &Worker{
		queue:    queue,
		renderer: renderer,
		sender:   sender,
	}
}

// Handle is the queue Handler for every mail job.
func (w *Worker) Handle(ctx context.Context, job *Job) error {
	msg, err := w.renderer.Render(job)
	if err != nil {
		return err
	}

	if err = w.sender.Send(ctx, msg); err != nil {
		return err
	}

	logrus.WithField("job_id", job.ID).WithField("job_name", job.Name).WithField("to", msg.To).Info("email sent")
	return nil
}

// Run processes jobs until ctx is done.
func (w *Worker) Run(ctx context.Context, concurrency int, pollInterval time.Duration) {
	logrus.WithField("concurrency", concurrency).Info("mail worker started")
	w.queue.Run(ctx, w.Handle, concurrency, pollInterval)
	logrus.Info("mail worker stopped")
}
