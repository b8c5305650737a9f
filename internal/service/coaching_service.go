package service

import (
	"context"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/textgen"
)

// CoachingService serves the motivational tips of the dashboard.
type CoachingService interface {
	// Tips never fails once the viewer is known: generation problems yield
	// the fallback sentence.
	Tips(ctx context.Context, viewerID, focus string) (string, error)
}

type coachingService struct {
	ctrl      *Controller
	generator textgen.Generator
}

// NewCoachingService creates a new instance of coachingService.
func NewCoachingService(ctrl *Controller, generator textgen.Generator) CoachingService {
	return &coachingService{ctrl: ctrl, generator: generator}
}

func (s *coachingService) Tips(ctx context.Context, viewerID, focus string) (string, error) {
	viewer, _, err := s.ctrl.viewer(viewerID)
	if err != nil {
		return "", err
	}
	return s.generator.TrainingTips(ctx, viewer.Level, focus), nil
}
