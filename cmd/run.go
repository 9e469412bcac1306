package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/RomiBareiro/iamprobe/pkg/aws"
	"github.com/RomiBareiro/iamprobe/pkg/common"
	"github.com/RomiBareiro/iamprobe/pkg/provision"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Provision the IAM resource set, verify S3 access, tear everything down",
	Run: func(cmd *cobra.Command, args []string) {
		_ = setLogLevel()

		log.Infof("Starting iamprobe %s", GetCurrentVersion())
		common.CheckEnvVars()

		cfg, err := buildConfig(cmd)
		if err != nil {
			log.Fatalf("Invalid configuration: %s", err.Error())
		}

		region := getCmdString(cmd, "aws-region")
		sess := aws.CreateSession(region)
		identity := aws.NewIdentityClient(sess)
		storage := aws.NewStorageClient(region)

		var opts []provision.Option
		if getCmdBool(cmd, "pause") {
			opts = append(opts, provision.WithConfirm(promptEnter))
		}

		controller, err := provision.New(cfg, identity, storage, opts...)
		if err != nil {
			log.Fatalf("Can't build the workflow: %s", err.Error())
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		report, runErr := controller.Run(ctx)

		if !report.VerifySkipped && report.RunErr == nil {
			fmt.Println(common.FormatBuckets(report.Buckets))
		}
		fmt.Println(common.FormatReport(report))

		if runErr != nil {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("aws-region", "a", "us-east-1", "AWS region the probe runs in")
	runCmd.Flags().String("group-name", provision.DefaultGroupName, "Name of the group to create")
	runCmd.Flags().String("user-name", provision.DefaultUserName, "Name of the user to create")
	runCmd.Flags().String("policy-name", provision.DefaultPolicyName, "Name of the inline group policy")
	runCmd.Flags().String("policy-file", "", "Path to a policy document to attach instead of the default read-only one")
	runCmd.Flags().Bool("abort-on-duplicate", false, "Abort when the user already exists instead of continuing")
	runCmd.Flags().Duration("key-poll-interval", time.Second, "Initial interval of the key activation poll")
	runCmd.Flags().Duration("key-wait-timeout", 2*time.Minute, "Maximum wait for the access key to become active")
	runCmd.Flags().Bool("pause", false, "Ask for confirmation before the verification step")
	runCmd.Flags().Bool("skip-verify", false, "Provision and tear down without listing buckets")
}

func buildConfig(cmd *cobra.Command) (provision.Config, error) {
	cfg := provision.DefaultConfig()
	cfg.GroupName = getCmdString(cmd, "group-name")
	cfg.UserName = getCmdString(cmd, "user-name")
	cfg.PolicyName = getCmdString(cmd, "policy-name")
	cfg.SkipVerify = getCmdBool(cmd, "skip-verify")

	if getCmdBool(cmd, "abort-on-duplicate") {
		cfg.OnDuplicateUser = provision.AbortOnDuplicate
	}

	if interval, err := cmd.Flags().GetDuration("key-poll-interval"); err == nil {
		cfg.KeyPollInterval = interval
	}
	if timeout, err := cmd.Flags().GetDuration("key-wait-timeout"); err == nil {
		cfg.KeyWaitTimeout = timeout
	}

	if policyFile := getCmdString(cmd, "policy-file"); policyFile != "" {
		document, err := os.ReadFile(policyFile)
		if err != nil {
			return cfg, fmt.Errorf("can't read policy file %s: %w", policyFile, err)
		}
		cfg.PolicyDocument = string(document)
	}

	return cfg, nil
}

func promptEnter(prompt string) bool {
	fmt.Printf("%s Press enter to continue, anything else skips: ", prompt)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.TrimSpace(line)
	return answer == "" || strings.EqualFold(answer, "y")
}

func getCmdString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func getCmdBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}
