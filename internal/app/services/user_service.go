package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/campushire/campushire/internal/app/models"
	"github.com/campushire/campushire/internal/app/models/dto"
	"github.com/campushire/campushire/internal/app/repositories/user"
	"github.com/campushire/campushire/internal/pkg/apperrors"
	"github.com/campushire/campushire/internal/pkg/filestorage"
	"github.com/campushire/campushire/internal/pkg/logger"
)

const (
	maxCVSize             = 5 << 20
	maxProfilePictureSize = 2 << 20

	cvSubPath             = "cvs"
	profilePictureSubPath = "profile_pics"
)

var (
	allowedCVExtensions      = map[string]bool{".pdf": true, ".doc": true, ".docx": true}
	allowedPictureExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
)

// UserService handles profile reads, updates and file uploads
type UserService struct {
	userRepo UserStore
	storage  filestorage.FileStorage
}

// NewUserService creates a new UserService
func NewUserService(userRepo UserStore, storage filestorage.FileStorage) *UserService {
	return &UserService{
		userRepo: userRepo,
		storage:  storage,
	}
}

// GetProfile returns the caller's account with its role profile attached
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &dto.ProfileResponse{
		UserResponse: dto.NewUserResponse(u),
	}

	switch u.RoleType {
	case models.RoleStudent:
		student, err := s.userRepo.GetStudentByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		profile.StudentProfile = dto.NewStudentProfileResponse(student)

	case models.RoleEmployer:
		employer, err := s.userRepo.GetEmployerByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		profile.EmployerProfile = dto.NewEmployerProfileResponse(employer)
	}

	return profile, nil
}

// UpdateProfile applies a partial update to the account and, for students,
// the student profile fields, then returns the refreshed profile
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	update := user.ProfileUpdate{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	}
	if req.Gender != nil {
		gender := models.GenderType(*req.Gender)
		update.Gender = &gender
	}

	if err := s.userRepo.UpdateUserProfile(ctx, userID, update); err != nil {
		return nil, err
	}

	if u.RoleType == models.RoleStudent {
		studentUpdate := user.StudentFieldsUpdate{
			Bio:      req.Bio,
			Address:  req.Address,
			City:     req.City,
			Province: req.Province,
			Zip:      req.Zip,
		}
		if err := s.userRepo.UpdateStudentFields(ctx, userID, studentUpdate); err != nil {
			return nil, err
		}
	}

	return s.GetProfile(ctx, userID)
}

// UploadCV stores a student's CV and records its URL on the profile. Replaced
// files are removed from storage.
func (s *UserService) UploadCV(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*dto.UploadResponse, error) {
	student, err := s.requireStudent(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := validateUpload(fileHeader, allowedCVExtensions, maxCVSize); err != nil {
		return nil, err
	}

	fileURL, err := s.storage.SaveFileWithPath(fileHeader, cvSubPath)
	if err != nil {
		return nil, fmt.Errorf("error saving CV: %w", err)
	}

	if err := s.userRepo.UpdateStudentCV(ctx, userID, fileURL); err != nil {
		return nil, err
	}

	if student.CVURL != nil {
		if err := s.storage.DeleteFile(*student.CVURL); err != nil {
			logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to remove replaced CV")
		}
	}

	return &dto.UploadResponse{Message: "CV uploaded", URL: fileURL}, nil
}

// UploadProfilePicture stores a student's profile picture and records its URL
func (s *UserService) UploadProfilePicture(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*dto.UploadResponse, error) {
	student, err := s.requireStudent(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := validateUpload(fileHeader, allowedPictureExtensions, maxProfilePictureSize); err != nil {
		return nil, err
	}

	fileURL, err := s.storage.SaveFileWithPath(fileHeader, profilePictureSubPath)
	if err != nil {
		return nil, fmt.Errorf("error saving profile picture: %w", err)
	}

	if err := s.userRepo.UpdateStudentProfilePicture(ctx, userID, fileURL); err != nil {
		return nil, err
	}

	if student.ProfilePicture != nil {
		if err := s.storage.DeleteFile(*student.ProfilePicture); err != nil {
			logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to remove replaced profile picture")
		}
	}

	return &dto.UploadResponse{Message: "Profile picture uploaded", URL: fileURL}, nil
}

func (s *UserService) requireStudent(ctx context.Context, userID int64) (*models.Student, error) {
	student, err := s.userRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentProfileNotFound) {
			return nil, apperrors.ErrPermissionDenied
		}
		return nil, err
	}
	return student, nil
}

func validateUpload(fileHeader *multipart.FileHeader, allowed map[string]bool, maxSize int64) error {
	if fileHeader == nil {
		return fmt.Errorf("%w: file is required", apperrors.ErrValidationFailed)
	}
	if fileHeader.Size > maxSize {
		return fmt.Errorf("%w: file exceeds the size limit", apperrors.ErrValidationFailed)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowed[ext] {
		return fmt.Errorf("%w: file type %q is not allowed", apperrors.ErrValidationFailed, ext)
	}

	return nil
}
