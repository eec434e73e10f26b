package myqueue

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	grpcCodes "google.golang.org/grpc/codes"
	grpcStatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const dispatchDelay = 2 * time.Second

type gcloudTaskQueue struct {
	client    *cloudtasks.Client
	queuePath string
}

func newGcloudQueue(c context.Context) (TaskQueuer, func(), error) {
	cloudTaskClient, err := cloudtasks.NewClient(c)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating cloudtask-client: %w", err)
	}
	return &gcloudTaskQueue{
			client:    cloudTaskClient,
			queuePath: composeQueuePath(os.Getenv("GOOGLE_CLOUD_PROJECT"), os.Getenv("LOCATION_ID"), os.Getenv("QUEUE_NAME")),
		}, func() {
			cloudTaskClient.Close()
		}, nil
}

func composeQueuePath(projectID, locationID, queueName string) string {
	if queueName == "" {
		queueName = "default"
	}
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", projectID, locationID, queueName)
}

func (q *gcloudTaskQueue) taskPath(taskUID string) string {
	return fmt.Sprintf("%s/tasks/%s", q.queuePath, taskUID)
}

func (q *gcloudTaskQueue) Enqueue(c context.Context, task Task) error {
	taskPath := q.taskPath(task.UID)
	_, err := q.client.CreateTask(c, &taskspb.CreateTaskRequest{
		Parent: q.queuePath,
		Task: &taskspb.Task{
			Name:         taskPath, // de-duplicates on envelope uid
			ScheduleTime: timestamppb.New(time.Now().Add(dispatchDelay)),
			MessageType: &taskspb.Task_AppEngineHttpRequest{
				AppEngineHttpRequest: &taskspb.AppEngineHttpRequest{
					HttpMethod:  taskspb.HttpMethod_PUT,
					RelativeUri: task.WebhookURLPath,
					Body:        task.Payload,
				},
			},
			View: taskspb.Task_FULL,
		},
	})
	if err != nil {
		rsp, ok := grpcStatus.FromError(err)
		if ok && rsp.Code() == grpcCodes.AlreadyExists {
			log.Printf("task %s already exists -> ignore", taskPath)
			return nil
		}
		return fmt.Errorf("error submitting task %s to queue: %w", taskPath, err)
	}
	return nil
}

func (q *gcloudTaskQueue) IsLastAttempt(c context.Context, taskUID string) (int32, int32) {
	var dispatchCount int32 = 0
	var maxAttempts int32 = -1

	queue, err := q.client.GetQueue(c, &taskspb.GetQueueRequest{Name: q.queuePath})
	if err != nil {
		log.Printf("error getting queue %s: %s", q.queuePath, err)
		return dispatchCount, maxAttempts
	}
	if queue.RetryConfig != nil {
		maxAttempts = queue.RetryConfig.MaxAttempts
	}

	task, err := q.client.GetTask(c, &taskspb.GetTaskRequest{Name: q.taskPath(taskUID)})
	if err != nil {
		log.Printf("error getting task %s: %s", taskUID, err)
		return dispatchCount, maxAttempts
	}

	return task.DispatchCount, maxAttempts
}
