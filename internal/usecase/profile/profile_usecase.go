package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/sparring-backend/internal/domain"
	"github.com/gdugdh24/sparring-backend/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
	}
}

// CreateProfileRequest represents profile creation request
type CreateProfileRequest struct {
	Name              string   `json:"name" binding:"required,min=1,max=100"`
	Age               *int     `json:"age" binding:"omitempty,min=1,max=120"`
	Weight            *float64 `json:"weight" binding:"omitempty,gt=0,max=400"`
	Height            *float64 `json:"height" binding:"omitempty,gt=0,max=300"`
	Sport             string   `json:"sport" binding:"required,min=1,max=100"`
	SkillLevel        int      `json:"skill_level" binding:"required,min=1,max=10"`
	ExperienceYears   *int     `json:"experience_years" binding:"omitempty,min=0,max=100"`
	Goals             *string  `json:"goals" binding:"omitempty,max=1000"`
	TrainingIntensity *string  `json:"training_intensity" binding:"omitempty,oneof=light medium hard"`
	City              *string  `json:"city" binding:"omitempty,max=100"`
}

// UpdateProfileRequest represents a partial profile update; nil fields are left untouched.
type UpdateProfileRequest struct {
	Name              *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Age               *int     `json:"age" binding:"omitempty,min=1,max=120"`
	Weight            *float64 `json:"weight" binding:"omitempty,gt=0,max=400"`
	Height            *float64 `json:"height" binding:"omitempty,gt=0,max=300"`
	Sport             *string  `json:"sport" binding:"omitempty,min=1,max=100"`
	SkillLevel        *int     `json:"skill_level" binding:"omitempty,min=1,max=10"`
	ExperienceYears   *int     `json:"experience_years" binding:"omitempty,min=0,max=100"`
	Goals             *string  `json:"goals" binding:"omitempty,max=1000"`
	TrainingIntensity *string  `json:"training_intensity" binding:"omitempty,oneof=light medium hard"`
	City              *string  `json:"city" binding:"omitempty,max=100"`
}

func validateSkill(level int) error {
	if level < domain.MinSkillLevel || level > domain.MaxSkillLevel {
		return fmt.Errorf("%w: skill_level must be between %d and %d",
			domain.ErrInvalidInput, domain.MinSkillLevel, domain.MaxSkillLevel)
	}
	return nil
}

func validateIntensity(intensity *string) error {
	if intensity != nil && !domain.IsValidIntensity(*intensity) {
		return fmt.Errorf("%w: unknown training_intensity %q", domain.ErrInvalidInput, *intensity)
	}
	return nil
}

// GetMyProfile returns current user's profile
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// GetProfileByUserID returns another athlete's profile
func (uc *ProfileUseCase) GetProfileByUserID(ctx context.Context, targetUserID string) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, targetUserID)
}

// CreateProfile creates the user's single profile
func (uc *ProfileUseCase) CreateProfile(ctx context.Context, userID string, req *CreateProfileRequest) (*domain.Profile, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Sport) == "" {
		return nil, fmt.Errorf("%w: name and sport are required", domain.ErrInvalidInput)
	}
	if err := validateSkill(req.SkillLevel); err != nil {
		return nil, err
	}
	if err := validateIntensity(req.TrainingIntensity); err != nil {
		return nil, err
	}

	// Check if profile already exists
	_, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return nil, domain.ErrProfileAlreadyExists
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile := &domain.Profile{
		UserID:            userID,
		Name:              strings.TrimSpace(req.Name),
		Age:               req.Age,
		Weight:            req.Weight,
		Height:            req.Height,
		Sport:             strings.TrimSpace(req.Sport),
		SkillLevel:        req.SkillLevel,
		ExperienceYears:   req.ExperienceYears,
		Goals:             req.Goals,
		TrainingIntensity: req.TrainingIntensity,
		City:              req.City,
	}

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrProfileAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

// UpdateProfile updates user profile
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*domain.Profile, error) {
	if req.SkillLevel != nil {
		if err := validateSkill(*req.SkillLevel); err != nil {
			return nil, err
		}
	}
	if err := validateIntensity(req.TrainingIntensity); err != nil {
		return nil, err
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Update fields if provided
	if req.Name != nil {
		profile.Name = strings.TrimSpace(*req.Name)
	}
	if req.Age != nil {
		profile.Age = req.Age
	}
	if req.Weight != nil {
		profile.Weight = req.Weight
	}
	if req.Height != nil {
		profile.Height = req.Height
	}
	if req.Sport != nil {
		profile.Sport = strings.TrimSpace(*req.Sport)
	}
	if req.SkillLevel != nil {
		profile.SkillLevel = *req.SkillLevel
	}
	if req.ExperienceYears != nil {
		profile.ExperienceYears = req.ExperienceYears
	}
	if req.Goals != nil {
		profile.Goals = req.Goals
	}
	if req.TrainingIntensity != nil {
		profile.TrainingIntensity = req.TrainingIntensity
	}
	if req.City != nil {
		profile.City = req.City
	}

	if profile.Name == "" || profile.Sport == "" {
		return nil, fmt.Errorf("%w: name and sport cannot be empty", domain.ErrInvalidInput)
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}
