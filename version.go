package orbit

const Version = "0.2.0"
