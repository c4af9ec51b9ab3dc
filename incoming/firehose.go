// Shape of a delivery stream once the connector has normalized the DescribeDeliveryStream output.
// To parse and unparse this JSON data:
//
//    description, err := UnmarshalDeliveryStreamDescription(bytes)
//    bytes, err = description.Marshal()

package incoming

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func UnmarshalDeliveryStreamDescription(data []byte) (DeliveryStreamDescription, error) {
	var r DeliveryStreamDescription
	err := json.Unmarshal(data, &r)
	return r, err
}

func (r *DeliveryStreamDescription) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// Validate checks the description is complete enough to be stored.
// The error is a validator.ValidationErrors and is meant to be returned as is.
func (r *DeliveryStreamDescription) Validate() error {
	return validate.Struct(r)
}

type DeliveryStreamDescription struct {
	DeliveryStreamName                    string                                `json:"delivery_stream_name" validate:"required"`
	DeliveryStreamARN                     string                                `json:"delivery_stream_arn" validate:"required,startswith=arn:"`
	DeliveryStreamStatus                  string                                `json:"delivery_stream_status" validate:"required,oneof=CREATING CREATING_FAILED DELETING DELETING_FAILED ACTIVE"`
	DeliveryStreamType                    string                                `json:"delivery_stream_type,omitempty"`
	VersionID                             string                                `json:"version_id,omitempty"`
	CreateTimestamp                       *time.Time                            `json:"create_timestamp,omitempty"`
	LastUpdateTimestamp                   *time.Time                            `json:"last_update_timestamp,omitempty"`
	HasMoreDestinations                   bool                                  `json:"has_more_destinations"`
	Source                                Source                                `json:"source"`
	Destinations                          Destinations                          `json:"destinations"`
	DeliveryStreamEncryptionConfiguration DeliveryStreamEncryptionConfiguration `json:"delivery_stream_encryption_configuration"`
	Tags                                  []Tag                                 `json:"tags" validate:"dive"`
	AdditionalTabs                        AdditionalTabs                        `json:"additional_tabs"`
}

type Source struct {
	SourceDetails                  string                          `json:"source_details"`
	KinesisStreamSourceDescription *KinesisStreamSourceDescription `json:"kinesis_stream_source_description,omitempty"`
	MSKSourceDescription           *MSKSourceDescription           `json:"msk_source_description,omitempty"`
}

type KinesisStreamSourceDescription struct {
	KinesisStreamARN       string     `json:"kinesis_stream_arn"`
	RoleARN                string     `json:"role_arn"`
	DeliveryStartTimestamp *time.Time `json:"delivery_start_timestamp,omitempty"`
}

type MSKSourceDescription struct {
	MSKClusterARN string `json:"msk_cluster_arn"`
	TopicName     string `json:"topic_name"`
}

type DeliveryStreamEncryptionConfiguration struct {
	Status  string `json:"status"`
	KeyType string `json:"key_type"`
	KeyARN  string `json:"key_arn,omitempty"`
}

// Destinations holds the first destination of the stream, only one of the descriptions is set
type Destinations struct {
	DestinationID                      string                              `json:"destination_id"`
	ExtendedS3DestinationDescription   *ExtendedS3DestinationDescription   `json:"extended_s3_destination_description,omitempty"`
	HTTPEndpointDestinationDescription *HTTPEndpointDestinationDescription `json:"http_endpoint_destination_description,omitempty"`
	RedshiftDestinationDescription     *RedshiftDestinationDescription     `json:"redshift_destination_description,omitempty"`
}

type ExtendedS3DestinationDescription struct {
	BucketARN                         string                             `json:"bucket_arn"`
	BucketName                        string                             `json:"bucket_name"`
	Prefix                            string                             `json:"prefix"`
	ErrorOutputPrefix                 string                             `json:"error_output_prefix"`
	BufferConditions                  string                             `json:"buffer_conditions"`
	Compression                       string                             `json:"compression"`
	RoleARN                           string                             `json:"role_arn"`
	S3BackupMode                      string                             `json:"s3_backup_mode"`
	EncryptionConfiguration           EncryptionConfiguration            `json:"encryption_configuration"`
	DataFormatConversionConfiguration *DataFormatConversionConfiguration `json:"data_format_conversion_configuration,omitempty"`
}

type EncryptionConfiguration struct {
	NoEncryption string `json:"no_encryption"`
	KMSKeyARN    string `json:"kms_key_arn,omitempty"`
}

type DataFormatConversionConfiguration struct {
	RecordFormatConversion string              `json:"record_format_conversion"`
	InputFormat            string              `json:"input_format"`
	OutputFormat           string              `json:"output_format"`
	SchemaConfiguration    SchemaConfiguration `json:"schema_configuration"`
}

type SchemaConfiguration struct {
	CatalogID    string `json:"catalog_id,omitempty"`
	Region       string `json:"region"`
	DatabaseName string `json:"database_name"`
	TableName    string `json:"table_name"`
	VersionID    string `json:"version_id"`
	RoleARN      string `json:"role_arn,omitempty"`
}

type HTTPEndpointDestinationDescription struct {
	EndpointConfiguration EndpointConfiguration `json:"endpoint_configuration"`
	RequestConfiguration  RequestConfiguration  `json:"request_configuration"`
	RetryOptions          RetryOptions          `json:"retry_options"`
	BufferConditions      string                `json:"buffer_conditions"`
	RoleARN               string                `json:"role_arn"`
	S3BackupMode          string                `json:"s3_backup_mode"`
}

type EndpointConfiguration struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type RequestConfiguration struct {
	ContentEncoding string `json:"content_encoding"`
}

type RetryOptions struct {
	DurationInSeconds int32 `json:"duration_in_seconds"`
}

type RedshiftDestinationDescription struct {
	ClusterJDBCURL string       `json:"cluster_jdbc_url"`
	Cluster        string       `json:"cluster"`
	DBName         string       `json:"db_name"`
	Username       string       `json:"username"`
	CopyCommand    CopyCommand  `json:"copy_command"`
	RetryOptions   RetryOptions `json:"retry_options"`
	RoleARN        string       `json:"role_arn"`
	S3BackupMode   string       `json:"s3_backup_mode"`
}

type CopyCommand struct {
	DataTableName    string `json:"data_table_name"`
	DataTableColumns string `json:"data_table_columns"`
	CopyOptions      string `json:"copy_options"`
}

type Tag struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

// AdditionalTabs are values computed for the console that have no single counterpart in the API
type AdditionalTabs struct {
	IAMRole        string       `json:"iam_role"`
	CloudWatchInfo string       `json:"cloud_watch_info"`
	LambdaTab      LambdaTab    `json:"lambda_tab"`
	S3BackupInfo   S3BackupInfo `json:"s3_backup_info"`
}

type LambdaTab struct {
	SourceRecordTransformation string `json:"source_record_transformation"`
	LambdaFunc                 string `json:"lambda_func"`
	LambdaFuncVer              string `json:"lambda_func_ver"`
	Timeout                    string `json:"timeout"`
	BufferConditions           string `json:"buffer_conditions"`
}

type S3BackupInfo struct {
	BackupMode        string `json:"backup_mode"`
	BucketName        string `json:"bucket_name"`
	BucketErrorPrefix string `json:"bucket_error_prefix"`
	BufferConditions  string `json:"buffer_conditions"`
	Compression       string `json:"compression"`
	Encryption        string `json:"encryption"`
}
