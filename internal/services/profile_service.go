package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/indieneer/backend/internal/apperrors"
	"github.com/indieneer/backend/internal/identity"
	"github.com/indieneer/backend/internal/models"
	"github.com/indieneer/backend/internal/repository"
)

// ProfileService encapsulates profile lifecycle logic, including the
// provisioning handshake with the identity provider.
type ProfileService struct {
	repo     *repository.ProfileRepository
	identity *identity.Client
}

// NewProfileService creates a new instance of ProfileService.
func NewProfileService(repo *repository.ProfileRepository, idp *identity.Client) *ProfileService {
	return &ProfileService{
		repo:     repo,
		identity: idp,
	}
}

// Get fetches a profile by its external id.
func (s *ProfileService) Get(ctx context.Context, id string) (*models.Profile, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	profile, err := s.repo.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NewNotFound("Profile", id)
	}
	return profile, nil
}

// GetByIdpID resolves the principal's profile_id-free lookup for /me.
func (s *ProfileService) GetByIdpID(ctx context.Context, idpID string) (*models.Profile, error) {
	profile, err := s.repo.GetByIdpID(ctx, idpID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NewNotFound("Profile", idpID)
	}
	return profile, nil
}

// GetAll returns every profile.
func (s *ProfileService) GetAll(ctx context.Context) ([]models.Profile, error) {
	return s.repo.GetAll(ctx)
}

// Create provisions the user in the identity provider, assigns the User
// role, inserts the profile and writes its id back into the provider's
// user metadata.
func (s *ProfileService) Create(ctx context.Context, input models.CreateProfile) (*models.Profile, error) {
	email := models.NormalizeEmail(input.Email)

	idpUser, err := s.identity.CreateUser(ctx, identity.CreateUserInput{
		Email:    email,
		Password: input.Password,
		Name:     input.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to provision identity user: %w", err)
	}

	if err := s.identity.AddRoles(ctx, idpUser.UserID, []string{"User"}); err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile, err := s.repo.Create(ctx, &models.Profile{
		Email:       email,
		Password:    string(hashed),
		Name:        input.Name,
		Nickname:    input.Nickname,
		DateOfBirth: input.DateOfBirth,
		IdpID:       idpUser.UserID,
	})
	if err != nil {
		return nil, err
	}

	profileID := profile.ID.Hex()
	_, err = s.identity.UpdateUser(ctx, idpUser.UserID, identity.UpdateUserInput{
		AppMetadata: map[string]interface{}{"profile_id": profileID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write profile id to identity metadata: %w", err)
	}

	logrus.WithField("profileID", profileID).Info("Profile created")
	return profile, nil
}

// Patch applies a partial update.
func (s *ProfileService) Patch(ctx context.Context, id string, input models.PatchProfile) (*models.Profile, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Patch(ctx, oid, input.Fields())
}

// Delete removes the profile and, best effort, its identity-provider
// account.
func (s *ProfileService) Delete(ctx context.Context, id string) (*models.Profile, error) {
	oid, err := models.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return nil, err
	}

	if profile.IdpID != "" {
		if err := s.identity.DeleteUser(ctx, profile.IdpID); err != nil {
			logrus.WithError(err).WithField("idpID", profile.IdpID).Warn("Failed to delete identity user")
		}
	}
	return profile, nil
}
