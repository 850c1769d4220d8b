package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

var ErrWorkerStopped = errors.New("transcription worker stopped")

// TranscriptionWorker owns the shared speech backend. Only its worker
// goroutines call the backend, so with concurrency 1 the model never sees two
// recordings at once.
type TranscriptionWorker interface {
	Start(ctx context.Context)
	Stop()
	Submit(ctx context.Context, audioPath string) (string, error)
}

type transcriptionJob struct {
	ctx       context.Context
	audioPath string
	result    chan transcriptionResult
}

type transcriptionResult struct {
	text string
	err  error
}

type worker struct {
	backend     SpeechBackend
	jobQueue    chan transcriptionJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewTranscriptionWorker(backend SpeechBackend, concurrency int) TranscriptionWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &worker{
		backend:     backend,
		jobQueue:    make(chan transcriptionJob, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements TranscriptionWorker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting transcription worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	log.Println("✅ Transcription worker started successfully")
}

// Stop implements TranscriptionWorker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping transcription worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Transcription worker stopped")
	})
}

// Submit implements TranscriptionWorker. It blocks until the recording is
// transcribed, ctx is done, or the worker stops.
func (w *worker) Submit(ctx context.Context, audioPath string) (string, error) {
	job := transcriptionJob{
		ctx:       ctx,
		audioPath: audioPath,
		result:    make(chan transcriptionResult, 1),
	}

	select {
	case w.jobQueue <- job:
		log.Printf("📥 Transcription of %s enqueued\n", audioPath)
	case <-ctx.Done():
		return "", ctx.Err()
	case <-w.stopChan:
		return "", ErrWorkerStopped
	}

	select {
	case res := <-job.result:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-w.stopChan:
		return "", ErrWorkerStopped
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			log.Printf("👷 Worker #%d stopped: %v\n", workerID, ctx.Err())
			return
		case job := <-w.jobQueue:
			if err := job.ctx.Err(); err != nil {
				job.result <- transcriptionResult{err: err}
				continue
			}

			log.Printf("👷 Worker #%d transcribing %s\n", workerID, job.audioPath)
			res := w.transcribe(job)
			if res.err != nil {
				log.Printf("❌ Worker #%d failed to transcribe %s: %v\n", workerID, job.audioPath, res.err)
			}
			job.result <- res
		}
	}
}

// transcribe runs one job. A panicking backend fails only that job.
func (w *worker) transcribe(job transcriptionJob) (res transcriptionResult) {
	defer func() {
		if r := recover(); r != nil {
			res = transcriptionResult{err: fmt.Errorf("transcription panicked: %v", r)}
		}
	}()

	text, err := w.backend.Transcribe(job.ctx, job.audioPath)
	return transcriptionResult{text: text, err: err}
}
