package dispatcher

// Static replies for /tasks-info and /tasks-man.

const infoText = `🎯 Task Bot

Task Bot turns channel messages into tracked tasks. Start a message with
TODO: to create a task, assign it with @name, and give it a deadline with
/d YYYY-MM-DD HH:MM. The bot confirms the task, lists open and completed
work on request, and posts a reminder to this channel when a task falls due.

Example:
TODO: Ship the quarterly report @alice /d 2025-03-01 14:30

Type /tasks-man for the full list of commands.`

const manText = `📖 Task Bot commands

TODO: <description> @<assignee> /d YYYY-MM-DD HH:MM — create a task
/tasks — list open tasks in this channel
/tasks-done — list completed tasks in this channel
/tasks-done <task id> — mark a task as completed, e.g. /tasks-done #1
/tasks-delete <task id> — delete a task, e.g. /tasks-delete #1
/tasks-info — what this bot does
/tasks-man — this manual`
