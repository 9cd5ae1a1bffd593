package connect

import (
	"context"

	"github.com/VinukaThejana/blog/config"
	"github.com/VinukaThejana/go-utils/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// InitMinioClient is a function that is used to initialize minio client and the profile image bucket
func (c *Connector) InitMinioClient(env *config.Env) {
	client, err := minio.New(env.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(env.MinioAPIKeyID, env.MinioAPIKeySecret, ""),
		Secure: env.MinioUseSSL,
	})
	if err != nil {
		logger.Errorf(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), env.DBTimeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, env.MinioBucket)
	if err != nil {
		logger.Errorf(err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, env.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			logger.Errorf(err)
		}
		logger.Log("Created the " + env.MinioBucket + " bucket")
	}

	c.M = client
}
