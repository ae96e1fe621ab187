// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

//go:build integration
// +build integration

package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_S3Put uploads an artifact to the bucket named by
// DEPLOYGEN_TEST_BUCKET using the configured AWS credentials.
func TestIntegration_S3Put(t *testing.T) {
	bucket := os.Getenv("DEPLOYGEN_TEST_BUCKET")
	if bucket == "" {
		t.Skip("DEPLOYGEN_TEST_BUCKET not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("deploygen-test-%d", time.Now().UnixNano())

	s, err := NewS3(ctx, bucket, prefix)
	require.NoError(t, err)

	loc, err := s.Put(ctx, "Dockerfile", []byte("FROM scratch\n"))
	require.NoError(t, err)
	assert.Equal(t, S3Scheme+bucket+"/"+prefix+"/Dockerfile", loc)

	client := s.Client.(*s3v2.Client)
	key := awsv2.String(prefix + "/Dockerfile")
	defer func() {
		_, _ = client.DeleteObject(ctx, &s3v2.DeleteObjectInput{Bucket: awsv2.String(bucket), Key: key})
	}()

	out, err := client.GetObject(ctx, &s3v2.GetObjectInput{Bucket: awsv2.String(bucket), Key: key})
	require.NoError(t, err)
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	require.NoError(t, err)
	assert.Equal(t, "FROM scratch\n", string(body))
}
