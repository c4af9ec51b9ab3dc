package incoming

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/firehose/types"
)

const (
	enabled  = "Enabled"
	disabled = "Disabled"

	directPutSource = "Direct PUT or other sources"
	latestVersion   = "$LATEST"
)

// FromAWS normalizes a DescribeDeliveryStream result and the tags of the stream.
// Only the first destination is kept, as the console only ever configures one.
func FromAWS(desc *types.DeliveryStreamDescription, tags []types.Tag) DeliveryStreamDescription {
	out := DeliveryStreamDescription{
		DeliveryStreamName:   aws.ToString(desc.DeliveryStreamName),
		DeliveryStreamARN:    aws.ToString(desc.DeliveryStreamARN),
		DeliveryStreamStatus: string(desc.DeliveryStreamStatus),
		DeliveryStreamType:   string(desc.DeliveryStreamType),
		VersionID:            aws.ToString(desc.VersionId),
		CreateTimestamp:      desc.CreateTimestamp,
		LastUpdateTimestamp:  desc.LastUpdateTimestamp,
		HasMoreDestinations:  aws.ToBool(desc.HasMoreDestinations),
		Source:               source(desc.Source),
		Tags:                 make([]Tag, 0, len(tags)),
	}

	if enc := desc.DeliveryStreamEncryptionConfiguration; enc != nil {
		out.DeliveryStreamEncryptionConfiguration = DeliveryStreamEncryptionConfiguration{
			Status:  string(enc.Status),
			KeyType: string(enc.KeyType),
			KeyARN:  aws.ToString(enc.KeyARN),
		}
	}

	for _, t := range tags {
		out.Tags = append(out.Tags, Tag{Key: aws.ToString(t.Key), Value: aws.ToString(t.Value)})
	}

	if len(desc.Destinations) > 0 {
		var common destinationCommon
		out.Destinations, common = destinations(desc.Destinations[0])
		out.AdditionalTabs = additionalTabs(common)
	}

	return out
}

// destinationCommon is what every destination kind has, and what the additional tabs are built from
type destinationCommon struct {
	roleARN    *string
	logging    *types.CloudWatchLoggingOptions
	processing *types.ProcessingConfiguration
	backupMode string
	backup     *types.S3DestinationDescription
}

func source(s *types.SourceDescription) Source {
	switch {
	case s == nil:
		return Source{SourceDetails: directPutSource}
	case s.KinesisStreamSourceDescription != nil:
		k := s.KinesisStreamSourceDescription
		return Source{
			SourceDetails: aws.ToString(k.KinesisStreamARN),
			KinesisStreamSourceDescription: &KinesisStreamSourceDescription{
				KinesisStreamARN:       aws.ToString(k.KinesisStreamARN),
				RoleARN:                aws.ToString(k.RoleARN),
				DeliveryStartTimestamp: k.DeliveryStartTimestamp,
			},
		}
	case s.MSKSourceDescription != nil:
		m := s.MSKSourceDescription
		return Source{
			SourceDetails: aws.ToString(m.MSKClusterARN),
			MSKSourceDescription: &MSKSourceDescription{
				MSKClusterARN: aws.ToString(m.MSKClusterARN),
				TopicName:     aws.ToString(m.TopicName),
			},
		}
	default:
		return Source{SourceDetails: directPutSource}
	}
}

func destinations(d types.DestinationDescription) (Destinations, destinationCommon) {
	out := Destinations{DestinationID: aws.ToString(d.DestinationId)}

	switch {
	case d.ExtendedS3DestinationDescription != nil:
		s3 := d.ExtendedS3DestinationDescription
		out.ExtendedS3DestinationDescription = &ExtendedS3DestinationDescription{
			BucketARN:                         aws.ToString(s3.BucketARN),
			BucketName:                        bucketName(aws.ToString(s3.BucketARN)),
			Prefix:                            aws.ToString(s3.Prefix),
			ErrorOutputPrefix:                 aws.ToString(s3.ErrorOutputPrefix),
			BufferConditions:                  bufferConditions(s3.BufferingHints),
			Compression:                       compression(s3.CompressionFormat),
			RoleARN:                           aws.ToString(s3.RoleARN),
			S3BackupMode:                      string(s3.S3BackupMode),
			EncryptionConfiguration:           encryptionConfiguration(s3.EncryptionConfiguration),
			DataFormatConversionConfiguration: dataFormatConversion(s3.DataFormatConversionConfiguration),
		}
		return out, destinationCommon{
			roleARN:    s3.RoleARN,
			logging:    s3.CloudWatchLoggingOptions,
			processing: s3.ProcessingConfiguration,
			backupMode: string(s3.S3BackupMode),
			backup:     s3.S3BackupDescription,
		}

	case d.HttpEndpointDestinationDescription != nil:
		h := d.HttpEndpointDestinationDescription
		desc := &HTTPEndpointDestinationDescription{
			RoleARN:      aws.ToString(h.RoleARN),
			S3BackupMode: string(h.S3BackupMode),
		}
		if h.EndpointConfiguration != nil {
			desc.EndpointConfiguration = EndpointConfiguration{
				Name: aws.ToString(h.EndpointConfiguration.Name),
				URL:  aws.ToString(h.EndpointConfiguration.Url),
			}
		}
		if h.RequestConfiguration != nil {
			desc.RequestConfiguration.ContentEncoding = string(h.RequestConfiguration.ContentEncoding)
		}
		if h.RetryOptions != nil {
			desc.RetryOptions.DurationInSeconds = aws.ToInt32(h.RetryOptions.DurationInSeconds)
		}
		if h.BufferingHints != nil {
			desc.BufferConditions = formatBuffer(h.BufferingHints.SizeInMBs, h.BufferingHints.IntervalInSeconds)
		}
		out.HTTPEndpointDestinationDescription = desc
		return out, destinationCommon{
			roleARN:    h.RoleARN,
			logging:    h.CloudWatchLoggingOptions,
			processing: h.ProcessingConfiguration,
			backupMode: string(h.S3BackupMode),
			backup:     h.S3DestinationDescription,
		}

	case d.RedshiftDestinationDescription != nil:
		r := d.RedshiftDestinationDescription
		cluster, db := parseJDBC(aws.ToString(r.ClusterJDBCURL))
		desc := &RedshiftDestinationDescription{
			ClusterJDBCURL: aws.ToString(r.ClusterJDBCURL),
			Cluster:        cluster,
			DBName:         db,
			Username:       aws.ToString(r.Username),
			RoleARN:        aws.ToString(r.RoleARN),
			S3BackupMode:   string(r.S3BackupMode),
		}
		if r.CopyCommand != nil {
			desc.CopyCommand = CopyCommand{
				DataTableName:    aws.ToString(r.CopyCommand.DataTableName),
				DataTableColumns: aws.ToString(r.CopyCommand.DataTableColumns),
				CopyOptions:      aws.ToString(r.CopyCommand.CopyOptions),
			}
		}
		if r.RetryOptions != nil {
			desc.RetryOptions.DurationInSeconds = aws.ToInt32(r.RetryOptions.DurationInSeconds)
		}
		out.RedshiftDestinationDescription = desc
		return out, destinationCommon{
			roleARN:    r.RoleARN,
			logging:    r.CloudWatchLoggingOptions,
			processing: r.ProcessingConfiguration,
			backupMode: string(r.S3BackupMode),
			backup:     r.S3BackupDescription,
		}
	}

	return out, destinationCommon{}
}

func additionalTabs(c destinationCommon) AdditionalTabs {
	tabs := AdditionalTabs{
		IAMRole:        aws.ToString(c.roleARN),
		CloudWatchInfo: cloudWatchInfo(c.logging),
		LambdaTab:      lambdaTab(c.processing),
		S3BackupInfo:   S3BackupInfo{BackupMode: c.backupMode},
	}

	if b := c.backup; b != nil {
		tabs.S3BackupInfo.BucketName = bucketName(aws.ToString(b.BucketARN))
		tabs.S3BackupInfo.BucketErrorPrefix = aws.ToString(b.ErrorOutputPrefix)
		tabs.S3BackupInfo.BufferConditions = bufferConditions(b.BufferingHints)
		tabs.S3BackupInfo.Compression = compression(b.CompressionFormat)
		tabs.S3BackupInfo.Encryption = disabled
		if b.EncryptionConfiguration != nil && b.EncryptionConfiguration.KMSEncryptionConfig != nil {
			tabs.S3BackupInfo.Encryption = enabled
		}
	}

	return tabs
}

func cloudWatchInfo(o *types.CloudWatchLoggingOptions) string {
	if o == nil || !aws.ToBool(o.Enabled) {
		return disabled
	}
	if group := aws.ToString(o.LogGroupName); group != "" {
		return fmt.Sprintf("%s (%s)", enabled, group)
	}
	return enabled
}

// lambdaTab leaves Timeout empty, it is part of the function configuration and not of the stream
func lambdaTab(p *types.ProcessingConfiguration) LambdaTab {
	if p == nil || !aws.ToBool(p.Enabled) {
		return LambdaTab{SourceRecordTransformation: disabled}
	}

	tab := LambdaTab{SourceRecordTransformation: enabled}
	for _, proc := range p.Processors {
		if proc.Type != types.ProcessorType("Lambda") {
			continue
		}

		var size, interval *int32
		for _, param := range proc.Parameters {
			value := aws.ToString(param.ParameterValue)
			switch string(param.ParameterName) {
			case "LambdaArn":
				tab.LambdaFunc, tab.LambdaFuncVer = lambdaFunction(value)
			case "BufferSizeInMBs":
				size = parseInt32(value)
			case "BufferIntervalInSeconds":
				interval = parseInt32(value)
			}
		}
		tab.BufferConditions = formatBuffer(size, interval)
		break
	}

	return tab
}

// lambdaFunction splits arn:aws:lambda:region:account:function:name[:qualifier]
func lambdaFunction(functionARN string) (string, string) {
	parsed, err := arn.Parse(functionARN)
	if err != nil {
		return functionARN, latestVersion
	}

	parts := strings.Split(parsed.Resource, ":")
	switch len(parts) {
	case 2:
		return parts[1], latestVersion
	case 3:
		return parts[1], parts[2]
	default:
		return parsed.Resource, latestVersion
	}
}

func dataFormatConversion(c *types.DataFormatConversionConfiguration) *DataFormatConversionConfiguration {
	if c == nil {
		return nil
	}

	out := &DataFormatConversionConfiguration{RecordFormatConversion: disabled}
	if aws.ToBool(c.Enabled) {
		out.RecordFormatConversion = enabled
	}

	if in := c.InputFormatConfiguration; in != nil && in.Deserializer != nil {
		switch {
		case in.Deserializer.OpenXJsonSerDe != nil:
			out.InputFormat = "OpenX JSON SerDe"
		case in.Deserializer.HiveJsonSerDe != nil:
			out.InputFormat = "Apache Hive JSON SerDe"
		}
	}

	if o := c.OutputFormatConfiguration; o != nil && o.Serializer != nil {
		switch {
		case o.Serializer.ParquetSerDe != nil:
			out.OutputFormat = "Apache Parquet"
		case o.Serializer.OrcSerDe != nil:
			out.OutputFormat = "Apache ORC"
		}
	}

	if s := c.SchemaConfiguration; s != nil {
		out.SchemaConfiguration = SchemaConfiguration{
			CatalogID:    aws.ToString(s.CatalogId),
			Region:       aws.ToString(s.Region),
			DatabaseName: aws.ToString(s.DatabaseName),
			TableName:    aws.ToString(s.TableName),
			VersionID:    aws.ToString(s.VersionId),
			RoleARN:      aws.ToString(s.RoleARN),
		}
	}

	return out
}

func encryptionConfiguration(c *types.EncryptionConfiguration) EncryptionConfiguration {
	if c == nil {
		return EncryptionConfiguration{NoEncryption: disabled}
	}
	if c.KMSEncryptionConfig != nil {
		return EncryptionConfiguration{
			NoEncryption: enabled,
			KMSKeyARN:    aws.ToString(c.KMSEncryptionConfig.AWSKMSKeyARN),
		}
	}
	return EncryptionConfiguration{NoEncryption: disabled}
}

func compression(f types.CompressionFormat) string {
	if f == "" || f == types.CompressionFormat("UNCOMPRESSED") {
		return disabled
	}
	return string(f)
}

func bufferConditions(h *types.BufferingHints) string {
	if h == nil {
		return ""
	}
	return formatBuffer(h.SizeInMBs, h.IntervalInSeconds)
}

func formatBuffer(sizeInMBs, intervalInSeconds *int32) string {
	switch {
	case sizeInMBs != nil && intervalInSeconds != nil:
		return fmt.Sprintf("%d MiB or %d seconds", *sizeInMBs, *intervalInSeconds)
	case sizeInMBs != nil:
		return fmt.Sprintf("%d MiB", *sizeInMBs)
	case intervalInSeconds != nil:
		return fmt.Sprintf("%d seconds", *intervalInSeconds)
	default:
		return ""
	}
}

func bucketName(bucketARN string) string {
	parsed, err := arn.Parse(bucketARN)
	if err != nil {
		return bucketARN
	}
	return parsed.Resource
}

// parseJDBC returns the cluster identifier and database of jdbc:redshift://cluster.id.region.redshift.amazonaws.com:5439/db
func parseJDBC(jdbcURL string) (string, string) {
	u, err := url.Parse(strings.TrimPrefix(jdbcURL, "jdbc:"))
	if err != nil || u.Hostname() == "" {
		return "", ""
	}

	cluster := strings.SplitN(u.Hostname(), ".", 2)[0]
	return cluster, strings.TrimPrefix(u.Path, "/")
}

func parseInt32(s string) *int32 {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return nil
	}
	return aws.Int32(int32(n))
}
