package driver

import (
	"github.com/juju/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// ScheduleReinit requests a re-initialization of the task on a cron schedule
// ("@every 1h", "0 3 * * *"). A display that lost sync after a glitch on the
// enable line cannot be detected, only repaired blindly. The caller stops the
// returned scheduler.
func ScheduleReinit(spec string, task *Task) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, task.RequestReinit); err != nil {
		return nil, errors.Annotatef(err, "reinit schedule %q", spec)
	}
	log.Infof("Re-initializing the display on schedule %q", spec)
	c.Start()
	return c, nil
}
