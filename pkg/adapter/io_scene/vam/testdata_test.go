// 指示: miu200521358
package vam

// sampleScene はテスト用の最小シーン。
const sampleScene = `{
   "version" : "1.20",
   "atoms" : [
      {
         "id" : "CoreControl",
         "storables" : [
            {
               "id" : "MotionAnimationMaster",
               "recordedLength" : "0",
               "startTimestep" : "0",
               "stopTimestep" : "0",
               "loop" : "true"
            }
         ]
      },
      {
         "id" : "Person",
         "type" : "Person",
         "storables" : [
            {
               "id" : "hipControl",
               "position" : { "x" : "0.1", "y" : "1.0", "z" : "-0.2" },
               "rotation" : { "x" : "0", "y" : "0", "z" : "0", "w" : "1" }
            },
            {
               "id" : "hip",
               "position" : { "x" : "9", "y" : "9", "z" : "9" }
            },
            {
               "id" : "head",
               "position" : { "x" : 0, "y" : 1.6, "z" : 0.05 }
            },
            {
               "id" : "neckControl",
               "rotation" : { "x" : "0", "y" : "0", "z" : "0", "w" : "1" }
            }
         ]
      }
   ]
}`
