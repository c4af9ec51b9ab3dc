package incoming

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/firehose/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func awsDescription() *types.DeliveryStreamDescription {
	return &types.DeliveryStreamDescription{
		DeliveryStreamName:   aws.String("orders"),
		DeliveryStreamARN:    aws.String("arn:aws:firehose:us-east-1:123456789012:deliverystream/orders"),
		DeliveryStreamStatus: types.DeliveryStreamStatusActive,
		DeliveryStreamType:   types.DeliveryStreamTypeKinesisStreamAsSource,
		VersionId:            aws.String("3"),
		CreateTimestamp:      aws.Time(time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)),
		HasMoreDestinations:  aws.Bool(false),
		Source: &types.SourceDescription{
			KinesisStreamSourceDescription: &types.KinesisStreamSourceDescription{
				KinesisStreamARN: aws.String("arn:aws:kinesis:us-east-1:123456789012:stream/orders"),
				RoleARN:          aws.String("arn:aws:iam::123456789012:role/source"),
			},
		},
		DeliveryStreamEncryptionConfiguration: &types.DeliveryStreamEncryptionConfiguration{
			Status:  types.DeliveryStreamEncryptionStatusEnabled,
			KeyType: types.KeyTypeAwsOwnedCmk,
		},
	}
}

func TestFromAWSExtendedS3(t *testing.T) {
	desc := awsDescription()
	desc.Destinations = []types.DestinationDescription{{
		DestinationId: aws.String("destinationId-000000000001"),
		ExtendedS3DestinationDescription: &types.ExtendedS3DestinationDescription{
			BucketARN:         aws.String("arn:aws:s3:::orders-bucket"),
			RoleARN:           aws.String("arn:aws:iam::123456789012:role/firehose"),
			Prefix:            aws.String("orders/"),
			ErrorOutputPrefix: aws.String("errors/"),
			BufferingHints:    &types.BufferingHints{SizeInMBs: aws.Int32(128), IntervalInSeconds: aws.Int32(300)},
			CompressionFormat: types.CompressionFormatGzip,
			EncryptionConfiguration: &types.EncryptionConfiguration{
				NoEncryptionConfig: types.NoEncryptionConfigNoEncryption,
			},
			CloudWatchLoggingOptions: &types.CloudWatchLoggingOptions{
				Enabled:      aws.Bool(true),
				LogGroupName: aws.String("/aws/kinesisfirehose/orders"),
			},
			ProcessingConfiguration: &types.ProcessingConfiguration{
				Enabled: aws.Bool(true),
				Processors: []types.Processor{{
					Type: types.ProcessorTypeLambda,
					Parameters: []types.ProcessorParameter{
						{ParameterName: types.ProcessorParameterName("LambdaArn"), ParameterValue: aws.String("arn:aws:lambda:us-east-1:123456789012:function:enrich:7")},
						{ParameterName: types.ProcessorParameterName("BufferSizeInMBs"), ParameterValue: aws.String("1")},
						{ParameterName: types.ProcessorParameterName("BufferIntervalInSeconds"), ParameterValue: aws.String("60")},
					},
				}},
			},
			S3BackupMode: types.S3BackupModeEnabled,
			S3BackupDescription: &types.S3DestinationDescription{
				BucketARN:         aws.String("arn:aws:s3:::orders-backup"),
				ErrorOutputPrefix: aws.String("backup-errors/"),
				BufferingHints:    &types.BufferingHints{SizeInMBs: aws.Int32(5), IntervalInSeconds: aws.Int32(60)},
				CompressionFormat: types.CompressionFormatUncompressed,
				EncryptionConfiguration: &types.EncryptionConfiguration{
					KMSEncryptionConfig: &types.KMSEncryptionConfig{AWSKMSKeyARN: aws.String("arn:aws:kms:us-east-1:123456789012:key/abc")},
				},
			},
			DataFormatConversionConfiguration: &types.DataFormatConversionConfiguration{
				Enabled: aws.Bool(true),
				InputFormatConfiguration: &types.InputFormatConfiguration{
					Deserializer: &types.Deserializer{OpenXJsonSerDe: &types.OpenXJsonSerDe{}},
				},
				OutputFormatConfiguration: &types.OutputFormatConfiguration{
					Serializer: &types.Serializer{ParquetSerDe: &types.ParquetSerDe{}},
				},
				SchemaConfiguration: &types.SchemaConfiguration{
					Region:       aws.String("us-east-1"),
					DatabaseName: aws.String("analytics"),
					TableName:    aws.String("orders"),
					VersionId:    aws.String("LATEST"),
				},
			},
		},
	}}
	tags := []types.Tag{{Key: aws.String("env"), Value: aws.String("prod")}}

	out := FromAWS(desc, tags)
	require.NoError(t, out.Validate())

	assert.Equal(t, "orders", out.DeliveryStreamName)
	assert.Equal(t, "ACTIVE", out.DeliveryStreamStatus)
	assert.Equal(t, "KinesisStreamAsSource", out.DeliveryStreamType)
	assert.Equal(t, "arn:aws:kinesis:us-east-1:123456789012:stream/orders", out.Source.SourceDetails)
	assert.Equal(t, "ENABLED", out.DeliveryStreamEncryptionConfiguration.Status)
	assert.Equal(t, "AWS_OWNED_CMK", out.DeliveryStreamEncryptionConfiguration.KeyType)
	assert.Equal(t, []Tag{{Key: "env", Value: "prod"}}, out.Tags)

	s3 := out.Destinations.ExtendedS3DestinationDescription
	require.NotNil(t, s3)
	assert.Equal(t, "destinationId-000000000001", out.Destinations.DestinationID)
	assert.Equal(t, "orders-bucket", s3.BucketName)
	assert.Equal(t, "orders/", s3.Prefix)
	assert.Equal(t, "128 MiB or 300 seconds", s3.BufferConditions)
	assert.Equal(t, "GZIP", s3.Compression)
	assert.Equal(t, "Disabled", s3.EncryptionConfiguration.NoEncryption)

	conv := s3.DataFormatConversionConfiguration
	require.NotNil(t, conv)
	assert.Equal(t, "Enabled", conv.RecordFormatConversion)
	assert.Equal(t, "OpenX JSON SerDe", conv.InputFormat)
	assert.Equal(t, "Apache Parquet", conv.OutputFormat)
	assert.Equal(t, "analytics", conv.SchemaConfiguration.DatabaseName)

	tabs := out.AdditionalTabs
	assert.Equal(t, "arn:aws:iam::123456789012:role/firehose", tabs.IAMRole)
	assert.Equal(t, "Enabled (/aws/kinesisfirehose/orders)", tabs.CloudWatchInfo)
	assert.Equal(t, LambdaTab{
		SourceRecordTransformation: "Enabled",
		LambdaFunc:                 "enrich",
		LambdaFuncVer:              "7",
		BufferConditions:           "1 MiB or 60 seconds",
	}, tabs.LambdaTab)
	assert.Equal(t, S3BackupInfo{
		BackupMode:        "Enabled",
		BucketName:        "orders-backup",
		BucketErrorPrefix: "backup-errors/",
		BufferConditions:  "5 MiB or 60 seconds",
		Compression:       "Disabled",
		Encryption:        "Enabled",
	}, tabs.S3BackupInfo)
}

func TestFromAWSHTTPEndpoint(t *testing.T) {
	desc := awsDescription()
	desc.Source = nil
	desc.Destinations = []types.DestinationDescription{{
		HttpEndpointDestinationDescription: &types.HttpEndpointDestinationDescription{
			EndpointConfiguration: &types.HttpEndpointDescription{
				Name: aws.String("collector"),
				Url:  aws.String("https://collector.example.com/firehose"),
			},
			RequestConfiguration: &types.HttpEndpointRequestConfiguration{ContentEncoding: types.ContentEncodingGzip},
			RetryOptions:         &types.HttpEndpointRetryOptions{DurationInSeconds: aws.Int32(300)},
			BufferingHints:       &types.HttpEndpointBufferingHints{SizeInMBs: aws.Int32(5)},
			RoleARN:              aws.String("arn:aws:iam::123456789012:role/http"),
			S3BackupMode:         types.HttpEndpointS3BackupModeFailedDataOnly,
		},
	}}

	out := FromAWS(desc, nil)

	assert.Equal(t, "Direct PUT or other sources", out.Source.SourceDetails)
	assert.Empty(t, out.Tags)
	require.NotNil(t, out.Destinations.HTTPEndpointDestinationDescription)
	h := out.Destinations.HTTPEndpointDestinationDescription
	assert.Equal(t, "collector", h.EndpointConfiguration.Name)
	assert.Equal(t, "https://collector.example.com/firehose", h.EndpointConfiguration.URL)
	assert.Equal(t, "GZIP", h.RequestConfiguration.ContentEncoding)
	assert.Equal(t, int32(300), h.RetryOptions.DurationInSeconds)
	assert.Equal(t, "5 MiB", h.BufferConditions)

	assert.Equal(t, "arn:aws:iam::123456789012:role/http", out.AdditionalTabs.IAMRole)
	assert.Equal(t, "Disabled", out.AdditionalTabs.CloudWatchInfo)
	assert.Equal(t, "Disabled", out.AdditionalTabs.LambdaTab.SourceRecordTransformation)
	assert.Equal(t, "FailedDataOnly", out.AdditionalTabs.S3BackupInfo.BackupMode)
}

func TestFromAWSRedshift(t *testing.T) {
	desc := awsDescription()
	desc.Destinations = []types.DestinationDescription{{
		RedshiftDestinationDescription: &types.RedshiftDestinationDescription{
			ClusterJDBCURL: aws.String("jdbc:redshift://warehouse.abc123.us-east-1.redshift.amazonaws.com:5439/dev"),
			Username:       aws.String("loader"),
			CopyCommand: &types.CopyCommand{
				DataTableName:    aws.String("orders"),
				DataTableColumns: aws.String("id,total"),
				CopyOptions:      aws.String("json 'auto'"),
			},
			RetryOptions: &types.RedshiftRetryOptions{DurationInSeconds: aws.Int32(3600)},
			RoleARN:      aws.String("arn:aws:iam::123456789012:role/redshift"),
		},
	}}

	r := FromAWS(desc, nil).Destinations.RedshiftDestinationDescription
	require.NotNil(t, r)
	assert.Equal(t, "warehouse", r.Cluster)
	assert.Equal(t, "dev", r.DBName)
	assert.Equal(t, "loader", r.Username)
	assert.Equal(t, "orders", r.CopyCommand.DataTableName)
	assert.Equal(t, "id,total", r.CopyCommand.DataTableColumns)
	assert.Equal(t, int32(3600), r.RetryOptions.DurationInSeconds)
}

func TestLambdaFunction(t *testing.T) {
	tests := []struct {
		arn     string
		name    string
		version string
	}{
		{"arn:aws:lambda:us-east-1:123456789012:function:enrich", "enrich", "$LATEST"},
		{"arn:aws:lambda:us-east-1:123456789012:function:enrich:prod", "enrich", "prod"},
		{"enrich", "enrich", "$LATEST"},
	}

	for _, tt := range tests {
		t.Run(tt.arn, func(t *testing.T) {
			name, version := lambdaFunction(tt.arn)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.version, version)
		})
	}
}

func TestParseJDBC(t *testing.T) {
	cluster, db := parseJDBC("jdbc:redshift://warehouse.abc123.us-east-1.redshift.amazonaws.com:5439/dev")
	assert.Equal(t, "warehouse", cluster)
	assert.Equal(t, "dev", db)

	cluster, db = parseJDBC("")
	assert.Empty(t, cluster)
	assert.Empty(t, db)
}
