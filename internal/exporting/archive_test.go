package exporting

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/revenue-compare-api/internal/config"
)

type mockPutObject struct {
	mock.Mock
}

func (m *mockPutObject) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func TestS3Archiver_Archive(t *testing.T) {
	wb := &Workbook{Filename: "results_2022_2023.xlsx", Data: []byte("xlsx-bytes")}

	t.Run("envia com chave prefixada por ulid", func(t *testing.T) {
		client := &mockPutObject{}
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			body, _ := io.ReadAll(in.Body)
			return aws.ToString(in.Bucket) == "revenue-exports" &&
				aws.ToString(in.Key) == "exports/01HZX/results_2022_2023.xlsx" &&
				aws.ToString(in.ContentType) == ContentType &&
				aws.ToInt64(in.ContentLength) == int64(len(wb.Data)) &&
				string(body) == "xlsx-bytes"
		})).Return(&s3.PutObjectOutput{}, nil)

		archiver := NewS3Archiver(client, "revenue-exports", "exports")
		archiver.newID = func() string { return "01HZX" }

		key, err := archiver.Archive(context.Background(), wb)

		require.NoError(t, err)
		assert.Equal(t, "exports/01HZX/results_2022_2023.xlsx", key)
		client.AssertExpectations(t)
	})

	t.Run("ids distintos por exportação", func(t *testing.T) {
		archiver := NewS3Archiver(&mockPutObject{}, "b", "p")
		assert.NotEqual(t, archiver.newID(), archiver.newID())
	})

	t.Run("erro do S3", func(t *testing.T) {
		client := &mockPutObject{}
		client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

		_, err := NewS3Archiver(client, "b", "p").Archive(context.Background(), wb)
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestNewArchiver_Disabled(t *testing.T) {
	archiver, err := NewArchiver(context.Background(), config.Export{ArchiveEnabled: false})
	require.NoError(t, err)

	key, err := archiver.Archive(context.Background(), &Workbook{})
	assert.NoError(t, err)
	assert.Empty(t, key)
}
