package submitter

// WorkerChannelMultiplier sizes the job buffer relative to the worker count.
const WorkerChannelMultiplier = 2
