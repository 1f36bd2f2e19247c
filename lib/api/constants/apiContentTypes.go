package constants

const ContentTypeJSON = "application/json"
