package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// ExportArchiver keeps a copy of generated export files, either in an S3
// bucket or in a local directory.
type ExportArchiver struct {
	sess   *session.Session
	bucket string
	dir    string
}

func NewLocalArchiver(dir string) *ExportArchiver {
	return &ExportArchiver{dir: dir}
}

func NewS3Archiver(bucket, region string) (*ExportArchiver, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}
	return &ExportArchiver{sess: sess, bucket: bucket}, nil
}

func (a *ExportArchiver) Mode() string {
	if a.sess != nil {
		return "s3"
	}
	return "local"
}

// Archive stores data under a time-bucketed unique key and returns the
// location of the copy.
func (a *ExportArchiver) Archive(name, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("%s/%s-%s",
		time.Now().Format("2006/01"),
		uuid.New().String()[:8],
		name,
	)

	if a.sess != nil {
		svc := s3.New(a.sess)
		_, err := svc.PutObject(&s3.PutObjectInput{
			Bucket:      aws.String(a.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
	}

	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(a.dir, strings.ReplaceAll(key, "/", "-"))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
