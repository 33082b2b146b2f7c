package strategies

import (
	"log/slog"
	"sync"

	"fileicons.dev/pkg/fileicons/internal/domain"
	"fileicons.dev/pkg/fileicons/internal/domain/scheduler"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

// headerMatcher classifies a loaded sample. line is its first line.
type headerMatcher func(line string, sample []byte) *m.Icon

// header is the policy shared by the strategies that read a file's leading
// bytes. The sample is requested once per resource, whichever header
// strategy gets there first, and is shared through the resource.
type header struct {
	scheduler *scheduler.Scheduler
	minSize   int64
	match     headerMatcher
}

func newHeader(s *scheduler.Scheduler, minSize int64, match headerMatcher) *header {
	return &header{scheduler: s, minSize: minSize, match: match}
}

func (h *header) MatchIcon(r *domain.Resource) *m.Icon {
	sample, state := r.Sample()

	switch state {
	case domain.SampleLoaded:
		if h.tooSmall(r.Stats()) {
			return nil
		}

		return h.match(firstLine(sample), sample)
	case domain.SampleNone:
		h.request(r)
	case domain.SampleRequested, domain.SampleUnreadable:
	}

	return nil
}

// eligible reports whether the header of r may be sampled now.
func (h *header) eligible(r *domain.Resource) bool {
	if r.IsVirtual() || r.IsDirectory() || r.Editing() || r.Destroyed() {
		return false
	}

	return !h.tooSmall(r.Stats())
}

func (h *header) tooSmall(stats *m.Stats) bool {
	return stats != nil && stats.Size < h.minSize
}

func (h *header) request(r *domain.Resource) {
	if h.scheduler == nil || !h.eligible(r) || !r.MarkSampleRequested() {
		return
	}

	path := r.Path()

	if r.Stats() == nil {
		h.scheduler.Request(m.ProbeStat, path).Then(func(result m.ProbeResult, err error) {
			if err == nil && result.Stats != nil {
				r.SetStats(result.Stats)
			}
		})
	}

	h.scheduler.Request(m.ProbeSample, path).Then(func(result m.ProbeResult, err error) {
		if err != nil {
			slog.Debug("header sample unavailable", "path", path, "error", err)
			r.MarkUnreadable()

			return
		}

		// Stats requested alongside arrive in the same merged result.
		if stats := result.Stats; h.tooSmall(stats) || (stats == nil && h.tooSmall(r.Stats())) {
			r.ResetSample()
			return
		}

		r.SetSample(result.Sample)
	})
}

// Watch reruns the classifier when the sample state or its first line
// changes, and when a resource that could not be sampled before becomes
// eligible. A new sample sharing the previous first line is ignored.
func (h *header) Watch(r *domain.Resource, recheck func()) domain.Subscription {
	var mu sync.Mutex

	last := r.FirstLine()
	_, lastState := r.Sample()

	retry := func(*domain.Resource) {
		if _, state := r.Sample(); state == domain.SampleNone {
			recheck()
		}
	}

	return domain.Subscriptions{
		r.OnDidChangeSample(func(*domain.Resource) {
			line := r.FirstLine()
			_, state := r.Sample()

			mu.Lock()
			changed := line != last || state != lastState
			last, lastState = line, state
			mu.Unlock()

			if changed {
				recheck()
			}
		}),
		r.OnDidChangeEditing(retry),
		r.OnDidLoadStats(retry),
	}
}

func firstLine(sample []byte) string {
	for i, b := range sample {
		if b == '\n' {
			sample = sample[:i]
			break
		}
	}

	if n := len(sample); n > 0 && sample[n-1] == '\r' {
		sample = sample[:n-1]
	}

	return string(sample)
}

// secondLine returns the line after the first one, if the sample has one.
func secondLine(sample []byte) string {
	for i, b := range sample {
		if b == '\n' {
			return firstLine(sample[i+1:])
		}
	}

	return ""
}
