/*
Copyright 2025 The OpenG2P Example Bank Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package notification

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/config"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/request"
)

// SlackNotification posts a formatted error message to the configured Slack
// webhook. Delivery is retried with exponential backoff; Slack being down
// must not take the settlement path with it.
func SlackNotification(err error) {
	data := json.RawMessage(fmt.Sprintf(`{
		"blocks": [
			{
				"type": "header",
				"text": {
					"type": "plain_text",
					"text": "Error From Example Bank",
					"emoji": true
				}
			},
			{
				"type": "section",
				"fields": [
					{
						"type": "mrkdwn",
						"text": "*Error:*\n%v"
					}
				]
			},
			{
				"type": "section",
				"fields": [
					{
						"type": "mrkdwn",
						"text": "*Time:*\n%v"
					}
				]
			}
		]
	}`, err.Error(), time.Now().Format(time.RFC822)))

	conf, err := config.Fetch()
	if err != nil {
		log.Println(err)
		return
	}

	operation := func() error {
		payload, err := request.ToJsonReq(&data)
		if err != nil {
			return err
		}

		req, err := http.NewRequest("POST", conf.Notification.Slack.WebhookUrl, payload)
		if err != nil {
			return err
		}

		var response map[string]interface{}
		_, err = request.Call(req, &response)
		return err
	}

	if err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)); err != nil {
		log.Println(err)
	}
}

// NotifyError sends an error notification through the configured channels.
// It logs the error locally and notifies Slack when a webhook is configured.
// Runs asynchronously to avoid blocking the caller.
func NotifyError(systemError error) {
	go func(systemError error) {
		logrus.Error(systemError)

		conf, err := config.Fetch()
		if err != nil {
			log.Println(err)
			return
		}

		if conf.Notification.Slack.WebhookUrl != "" {
			SlackNotification(systemError)
		}
	}(systemError)
}

// NotifyStrandedBatch raises an alert for a batch that exhausted its attempt
// budget without settling. There is no dead-letter queue; a human has to
// pick these up, so they must never strand silently.
func NotifyStrandedBatch(batchID string, attempts int) {
	NotifyError(fmt.Errorf("payment batch %s stranded after %d attempts, manual intervention required", batchID, attempts))
}
