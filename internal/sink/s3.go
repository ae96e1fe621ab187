// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Scheme prefixes S3 targets.
const S3Scheme = "s3://"

// options holds optional overrides for AWS config loading.
type options struct {
	profile  string
	region   string
	endpoint string
	retryer  func() awsv2.Retryer
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points the client at an S3 compatible endpoint and switches to
// path-style addressing.
func WithEndpoint(url string) Option {
	return func(o *options) { o.endpoint = url }
}

// WithRetryer injects a custom retryer; if not set, SDK defaults are used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// WithMaxAttempts uses the SDK's standard retryer capped at n attempts per
// upload. n below one keeps the SDK default.
func WithMaxAttempts(n int) Option {
	if n < 1 {
		return func(*options) {}
	}
	return WithRetryer(func() awsv2.Retryer {
		return retry.AddWithMaxAttempts(retry.NewStandard(), n)
	})
}

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS).
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	o := apply(opts)
	log.Debugf("opts applied: profile=%s, region=%s", o.profile, o.region)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Debugf("config load err: err=%v", err)
		return awsv2.Config{}, err
	}
	return cfg, nil
}

func apply(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// PutObjectAPI is the part of the S3 client the sink uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// S3 uploads artifacts below a bucket prefix.
type S3 struct {
	Client PutObjectAPI
	Bucket string
	Prefix string
}

// NewS3 builds an S3 sink from the AWS configuration chain.
func NewS3(ctx context.Context, bucket, prefix string, opts ...Option) (*S3, error) {
	cfg, err := LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	o := apply(opts)
	client := s3v2.NewFromConfig(cfg, func(so *s3v2.Options) {
		if o.endpoint != "" {
			so.BaseEndpoint = awsv2.String(o.endpoint)
			so.UsePathStyle = true
		}
	})
	log.Debugf("s3 client created: bucket=%s, prefix=%s", bucket, prefix)

	return &S3{Client: client, Bucket: bucket, Prefix: prefix}, nil
}

// Put uploads data as prefix/name.
func (s *S3) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	key := path.Join(s.Prefix, name)
	_, err := s.Client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:      awsv2.String(s.Bucket),
		Key:         awsv2.String(key),
		Body:        bytes.NewReader(data),
		ContentType: awsv2.String(ContentType(name)),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", name, err)
	}

	location := S3Scheme + s.Bucket + "/" + key
	log.Debugf("artifact uploaded: location=%s, size=%d", location, len(data))
	return location, nil
}

func (s *S3) String() string {
	return strings.TrimSuffix(S3Scheme+path.Join(s.Bucket, s.Prefix), "/")
}

// ParseS3URL splits s3://bucket/prefix. The prefix may be empty.
func ParseS3URL(url string) (bucket, prefix string, err error) {
	rest, ok := strings.CutPrefix(url, S3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 url: %q", url)
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("s3 url has no bucket: %q", url)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// ContentType maps an artifact name to its media type.
func ContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/plain; charset=utf-8"
}
