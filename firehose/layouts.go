package firehose

import (
	"github.com/Moulick/firehose-inventory/layout"
	"github.com/Moulick/firehose-inventory/resource"
)

// Tabs of a delivery stream in the console.
// Every layout here is built once at package load and shared by all resources.
var (
	StreamDetailsLayout = layout.Item("Stream Details", "",
		layout.TextField("ARN", "data.delivery_stream_arn"),
		layout.TextField("Status", "data.delivery_stream_status"),
		layout.DateTimeField("Data retention period", "data.create_timestamp"),
		layout.TextField("Permissions (IAM role)", "data.additional_tabs.iam_role"),
		layout.TextField("CloudWatch error logging", "data.additional_tabs.cloud_watch_info"),
	)

	SourceLayout = layout.Item("Source", "",
		layout.TextField("Source", "data.source.source_details"),
		layout.TextField("Server-side encryption for source records", "data.delivery_stream_encryption_configuration.status"),
		layout.TextField("Encryption type", "data.delivery_stream_encryption_configuration.key_type"),
	)

	LambdaLayout = layout.Item("Transform source records with AWS Lambda", "data.additional_tabs.lambda_tab",
		layout.TextField("Source record transformation", "source_record_transformation"),
		layout.TextField("Lambda function", "lambda_func"),
		layout.TextField("Lambda function version", "lambda_func_ver"),
		layout.TextField("Timeout", "timeout"),
		layout.TextField("Buffer conditions", "buffer_conditions"),
	)

	S3BackupLayout = layout.Item("S3 backup", "data.additional_tabs.s3_backup_info",
		layout.TextField("Backup mode", "backup_mode"),
		layout.TextField("Backup S3 bucket", "bucket_name"),
		layout.TextField("Backup S3 bucket error prefix", "bucket_error_prefix"),
		layout.TextField("S3 buffer conditions", "buffer_conditions"),
		layout.TextField("S3 compression", "compression"),
		layout.TextField("S3 encryption", "encryption"),
	)

	S3DestinationDetailsLayout = layout.Item("Amazon S3 Destination", "data.destinations.extended_s3_destination_description",
		layout.TextField("S3 bucket", "bucket_name"),
		layout.TextField("Prefix", "prefix"),
		layout.TextField("Error prefix", "error_output_prefix"),
		layout.TextField("Buffer conditions", "buffer_conditions"),
		layout.TextField("Compression", "compression"),
		layout.TextField("Encryption", "encryption_configuration.no_encryption"),
	)

	// The "Input format" key is kept as the console has always shipped it,
	// it does not resolve under the conversion root path.
	S3DestinationGlueLayout = layout.Item("Convert record format", "data.destinations.extended_s3_destination_description.data_format_conversion_configuration",
		layout.TextField("Record format conversion", "record_format_conversion"),
		layout.TextField("Output format", "output_format"),
		layout.TextField("Input format", "data.input_format"),
		layout.TextField("AWS Glue region", "schema_configuration.region"),
		layout.TextField("AWS Glue database", "schema_configuration.database_name"),
		layout.TextField("AWS Glue table", "schema_configuration.table_name"),
		layout.TextField("AWS Glue table version", "schema_configuration.version_id"),
	)

	S3DestinationLayout = layout.List("S3 Destination",
		S3DestinationDetailsLayout,
		S3DestinationGlueLayout,
	)

	// HTTPEndpointDestinationLayout and RedshiftDestinationLayout are not part of FirehoseMeta
	HTTPEndpointDestinationLayout = layout.Item("Http Endpoint Destination", "data.destinations.http_endpoint_destination_description",
		layout.TextField("HTTP endpoint name", "endpoint_configuration.name"),
		layout.TextField("HTTP endpoint URL", "endpoint_configuration.url"),
		layout.TextField("Content encoding", "request_configuration.content_encoding"),
		layout.TextField("Retry duration", "retry_options.duration_in_seconds"),
		layout.TextField("Buffer conditions", "buffer_conditions"),
	)

	RedshiftDestinationLayout = layout.Item("Redshift Destination", "data.destinations.redshift_destination_description",
		layout.TextField("COPY options", "copy_command.copy_options"),
		layout.TextField("COPY command retry duration (seconds)", "retry_options.duration_in_seconds"),
		layout.TextField("Cluster", "cluster"),
		layout.TextField("User name", "username"),
		layout.TextField("Database", "db_name"),
		layout.TextField("Table", "copy_command.data_table_name"),
		layout.TextField("Columns", "copy_command.data_table_columns"),
	)

	TagsLayout = layout.Table("Tags", "data.tags",
		layout.TextField("Key", "key"),
		layout.TextField("Value", "value"),
	)

	// FirehoseMeta is attached by pointer to every DeliveryStreamResource
	FirehoseMeta = resource.NewMeta(
		StreamDetailsLayout,
		SourceLayout,
		S3BackupLayout,
		LambdaLayout,
		S3DestinationLayout,
		TagsLayout,
	)
)
