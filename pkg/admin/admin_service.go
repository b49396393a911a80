package admin

import (
	"StyleShot-Backend/domain"
	"StyleShot-Backend/internal/utils/storage"
	"context"
	"mime/multipart"

	"github.com/google/uuid"
)

const mediaFolder = "media"

type (
	// AdminService is the privileged gateway in front of the object store.
	// The role is looked up on every call; there is no cached trust, so a
	// demoted admin loses access on their next request.
	AdminService interface {
		RequireAdmin(ctx context.Context, userID string) error
		ListFiles(ctx context.Context, userID string) ([]domain.StoredFile, error)
		UploadFile(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.UploadFileResponse, error)
		DeleteFile(ctx context.Context, userID string, objectKey string) error
	}

	adminService struct {
		adminRepository AdminRepository
		s3              storage.AwsS3
	}
)

func NewAdminService(adminRepository AdminRepository, s3 storage.AwsS3) AdminService {
	return &adminService{
		adminRepository: adminRepository,
		s3:              s3,
	}
}

func (s *adminService) RequireAdmin(ctx context.Context, userID string) error {
	isAdmin, err := s.adminRepository.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return domain.ErrAdminOnly
	}
	return nil
}

func (s *adminService) ListFiles(ctx context.Context, userID string) ([]domain.StoredFile, error) {
	if err := s.RequireAdmin(ctx, userID); err != nil {
		return nil, err
	}

	objects, err := s.s3.ListFiles(mediaFolder)
	if err != nil {
		return nil, err
	}

	files := make([]domain.StoredFile, 0, len(objects))
	for _, object := range objects {
		files = append(files, domain.StoredFile{
			Key:          object.Key,
			URL:          s.s3.GetPublicLinkKey(object.Key),
			Size:         object.Size,
			LastModified: object.LastModified,
		})
	}
	return files, nil
}

func (s *adminService) UploadFile(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.UploadFileResponse, error) {
	if err := s.RequireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, domain.ErrFileNotProvided
	}

	fileName := "media-" + uuid.New().String()
	objectKey, err := s.s3.UploadFile(fileName, file, mediaFolder, storage.AllowImage...)
	if err != nil {
		return nil, err
	}

	return &domain.UploadFileResponse{
		Key: objectKey,
		URL: s.s3.GetPublicLinkKey(objectKey),
	}, nil
}

func (s *adminService) DeleteFile(ctx context.Context, userID string, objectKey string) error {
	if err := s.RequireAdmin(ctx, userID); err != nil {
		return err
	}
	return s.s3.DeleteFile(objectKey)
}
